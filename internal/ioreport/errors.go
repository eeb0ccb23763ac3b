package ioreport

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/raseique/MOSCA/pkg/errcode"
)

func fastaError(path string, err error) error {
	msg := `Cannot read gene-calling FASTA <em>%s</em>

The FASTA headers define the feature universe of the sample's report.

<em>How to fix:</em>
  1. Check that gene calling ran for the sample
  2. Verify the file exists under Annotation/<sample>/`
	return &gn.Error{
		Code: errcode.ReportFastaError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot read fasta %s: %w", path, err),
	}
}

func annotationError(sample, path string, err error) error {
	msg := "Cannot use annotation table <em>%s</em> for sample <em>%s</em>"
	return &gn.Error{
		Code: errcode.ReportAnnotationError,
		Msg:  msg,
		Vars: []any{path, sample},
		Err: fmt.Errorf(
			"cannot use annotation table %s for sample %s: %w",
			path, sample, err),
	}
}

func quantificationError(sample, path string, err error) error {
	msg := `Cannot join quantification table <em>%s</em> for sample <em>%s</em>

<em>How to fix:</em>
  1. Check that the quantification step produced the file
  2. Verify its columns match the experiment names of the manifest`
	return &gn.Error{
		Code: errcode.ReportQuantificationError,
		Msg:  msg,
		Vars: []any{path, sample},
		Err: fmt.Errorf(
			"cannot join quantification table %s for sample %s: %w",
			path, sample, err),
	}
}

func allSamplesFailedError(count int) error {
	msg := `All <em>%d</em> samples failed to produce a report

<em>How to fix:</em>
  1. Check the log for per-sample errors
  2. Verify the output directory holds the upstream results`
	return &gn.Error{
		Code: errcode.ReportAllSamplesFailedError,
		Msg:  msg,
		Vars: []any{count},
		Err:  fmt.Errorf("all %d samples failed", count),
	}
}
