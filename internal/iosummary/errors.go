package iosummary

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/raseique/MOSCA/pkg/errcode"
)

func writeError(path string, err error) error {
	msg := "Cannot write summary report <em>%s</em>"
	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot write summary report %s: %w", path, err),
	}
}
