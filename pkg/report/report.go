// Package report defines the public interfaces of the reconciliation
// engine. Implementations live under internal/io* because they read
// and write the file tree produced by upstream tools.
package report

import (
	"context"

	"github.com/raseique/MOSCA/pkg/table"
)

// Builder drives the whole reporting run: per-sample feature tables,
// quantification joins, the consolidated workbook and the cross-sample
// matrices. A failing sample aborts only its own report; the run
// finishes and reports which samples succeeded.
type Builder interface {
	// Run processes every sample of the experiment manifest.
	Run(ctx context.Context) error
}

// Aggregator collects Entry-keyed quantification columns from the
// per-sample reports and combines them into one matrix per data type.
type Aggregator interface {
	// Collect extracts the sample's quantification columns keyed by
	// Entry and folds them into the running per-data-type matrices.
	// Rows without a resolvable Entry are excluded from aggregation
	// but counted.
	Collect(sample string, report *table.Table) error

	// Finalize groups each matrix by Entry, sums the quantification
	// columns, writes the matrices and the differential-expression
	// input. Protein evidence overrides RNA for the latter.
	Finalize(ctx context.Context) error
}

// Emitter owns the consolidated workbook. It is a single-writer
// resource scoped to the whole run: opened once, appended to per
// sample, closed once after the last sample.
type Emitter interface {
	// AddTable appends a sample's table as one sheet, or as several
	// numbered sheets when the table exceeds the row threshold.
	// A sheet name collision is an error, never an overwrite.
	AddTable(sample string, tbl *table.Table) error

	// Close flushes the workbook to the given path.
	Close(path string) error
}
