package table

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/raseique/MOSCA/pkg/errcode"
)

func readFileError(path string, err error) error {
	msg := "Cannot read table <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TableReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn, path, err),
	}
}

func writeFileError(path string, err error) error {
	msg := "Cannot write table <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write %s: %w", fn, path, err),
	}
}

func parseError(err error) error {
	return &gn.Error{
		Code: errcode.TableReadError,
		Msg:  "Cannot parse tab-separated data",
		Err:  fmt.Errorf("cannot parse tab-separated data: %w", err),
	}
}

func emptyInputError() error {
	return &gn.Error{
		Code: errcode.TableReadError,
		Msg:  "Table has no columns",
		Err:  fmt.Errorf("no column names given and no header found"),
	}
}

func missingColumnError(name string) error {
	msg := "Table has no column <em>%s</em>"
	return &gn.Error{
		Code: errcode.TableColumnError,
		Msg:  msg,
		Vars: []any{name},
		Err:  fmt.Errorf("missing column %q", name),
	}
}

func joinKeyError(name, side string) error {
	msg := "Join key <em>%s</em> is missing from the %s table"
	return &gn.Error{
		Code: errcode.TableJoinError,
		Msg:  msg,
		Vars: []any{name, side},
		Err:  fmt.Errorf("join key %q missing from %s table", name, side),
	}
}

func castError(col, val string, err error) error {
	msg := `Column <em>%s</em> holds a non-numeric value '%s'

<em>Possible causes:</em>
  - quantification file has a malformed row
  - wrong column was used as a quantification column`
	return &gn.Error{
		Code: errcode.TableCastError,
		Msg:  msg,
		Vars: []any{col, val},
		Err:  fmt.Errorf("column %q: cannot cast %q: %w", col, val, err),
	}
}
