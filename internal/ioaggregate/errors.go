package ioaggregate

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/raseique/MOSCA/pkg/errcode"
)

func entryError(sample string, err error) error {
	msg := "Cannot aggregate quantification of sample <em>%s</em>"
	return &gn.Error{
		Code: errcode.AggregateEntryError,
		Msg:  msg,
		Vars: []any{sample},
		Err: fmt.Errorf(
			"cannot aggregate quantification of sample %s: %w", sample, err),
	}
}

func writeError(path string, err error) error {
	msg := `Cannot write quantification matrix <em>%s</em>

<em>How to fix:</em>
  1. Check that the output directory is writable
  2. Check free disk space`
	return &gn.Error{
		Code: errcode.AggregateWriteError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot write matrix %s: %w", path, err),
	}
}
