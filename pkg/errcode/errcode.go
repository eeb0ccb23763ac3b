// Package errcode enumerates error codes used across the MOSCA
// reporting engine. Codes travel inside gn.Error values so the CLI
// can print user-facing messages with consistent formatting.
package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Experiment manifest errors
	ExpsReadError
	ExpsColumnError
	ExpsNameError
	ExpsDuplicateNameError

	// Table errors
	TableReadError
	TableColumnError
	TableJoinError
	TableCastError

	// Identifier bridge errors
	BridgeAlignmentError
	BridgeSpectraError

	// Report errors
	ReportFastaError
	ReportAnnotationError
	ReportQuantificationError
	ReportAllSamplesFailedError

	// Aggregation errors
	AggregateEntryError
	AggregateWriteError

	// Emitter errors
	EmitSheetNameError
	EmitWorkbookError
)
