package iobridge

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/raseique/MOSCA/pkg/errcode"
)

func alignmentError(path string, err error) error {
	msg := `Cannot read alignment table <em>%s</em>

The alignment table links gene-calling IDs to database accessions;
without it the sample's identifiers cannot be resolved.

<em>How to fix:</em>
  1. Check that the annotation step produced the file
  2. Verify it is tabular BLAST output (outfmt 6)`
	return &gn.Error{
		Code: errcode.BridgeAlignmentError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot read alignment table %s: %w", path, err),
	}
}

func spectraError(path string, err error) error {
	msg := "Cannot process protein report <em>%s</em>"
	return &gn.Error{
		Code: errcode.BridgeSpectraError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot process protein report %s: %w", path, err),
	}
}
