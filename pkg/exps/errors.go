package exps

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/raseique/MOSCA/pkg/errcode"
)

func readError(path string, err error) error {
	msg := `Cannot read experiments file <em>%s</em>

<em>How to fix:</em>
  1. Check the file exists and is readable
  2. Make sure it is tab-separated with a header row`
	return &gn.Error{
		Code: errcode.ExpsReadError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot read experiments file %s: %w", path, err),
	}
}

func columnError(path, col string) error {
	msg := `Experiments file <em>%s</em> is missing the column <em>%s</em>

The manifest needs the columns: Name, Sample, Data type, Files`
	return &gn.Error{
		Code: errcode.ExpsColumnError,
		Msg:  msg,
		Vars: []any{path, col},
		Err:  fmt.Errorf("experiments file %s: missing column %q", path, col),
	}
}

func nameError(name, reason string) error {
	msg := `Invalid "Name" in experiments: <em>%s</em> (%s)`
	return &gn.Error{
		Code: errcode.ExpsNameError,
		Msg:  msg,
		Vars: []any{name, reason},
		Err:  fmt.Errorf("invalid experiment name %q: %s", name, reason),
	}
}

func dataTypeError(name, dataType string) error {
	msg := `Invalid "Data type" for experiment <em>%s</em>: '%s'

Valid values are: dna, mrna, protein`
	return &gn.Error{
		Code: errcode.ExpsNameError,
		Msg:  msg,
		Vars: []any{name, dataType},
		Err: fmt.Errorf(
			"experiment %q: invalid data type %q", name, dataType),
	}
}

func duplicateNamesError(names []string) error {
	msg := `Multiple rows share the same "Name" value: <em>%s</em>

Experiment names must be unique across the whole run.`
	list := strings.Join(names, ", ")
	return &gn.Error{
		Code: errcode.ExpsDuplicateNameError,
		Msg:  msg,
		Vars: []any{list},
		Err:  fmt.Errorf("duplicated experiment names: %s", list),
	}
}
