package ioemit

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/raseique/MOSCA/pkg/errcode"
)

func sheetNameError(name string) error {
	msg := `Sheet name <em>%s</em> is already taken

Sheet names are capped at 31 characters, so long sample names can
collide after truncation.

<em>How to fix:</em>
  1. Shorten or disambiguate the sample names in the manifest`
	return &gn.Error{
		Code: errcode.EmitSheetNameError,
		Msg:  msg,
		Vars: []any{name},
		Err:  fmt.Errorf("duplicate sheet name %s", name),
	}
}

func workbookError(op string, err error) error {
	msg := "Cannot %s the consolidated workbook"
	return &gn.Error{
		Code: errcode.EmitWorkbookError,
		Msg:  msg,
		Vars: []any{op},
		Err:  fmt.Errorf("cannot %s workbook: %w", op, err),
	}
}
