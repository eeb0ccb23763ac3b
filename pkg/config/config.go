// Package config provides configuration management for the MOSCA
// reporting engine.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > mosca.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in mosca.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, mosca.yaml, and env vars):
//   - Report: max_sheet_rows, protein_fdr
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - OutputDir, ExpsFile, DidAssembly (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use MOSCA_ prefix with underscores for nesting:
//
//	MOSCA_REPORT_MAX_SHEET_ROWS=1000000
//	MOSCA_LOG_LEVEL=info
//	MOSCA_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete configuration of the reporting engine.
type Config struct {
	// Report contains settings for report reconciliation and emission.
	Report ReportConfig `mapstructure:"report" yaml:"report"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel
	// operations, such as the per-sample quantification reads.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// OutputDir is the directory that holds both the inputs produced by
	// upstream tools (Annotation/, Quantification/, Metaproteomics/) and
	// the reports written by this engine. Runtime-only, set by CLI.
	OutputDir string `yaml:"-" mapstructure:"-"`

	// ExpsFile is the path to the experiment manifest (exps.tsv).
	// Runtime-only, set by CLI.
	ExpsFile string `yaml:"-" mapstructure:"-"`

	// DidAssembly reports whether assembly was performed upstream. It
	// changes the join key of DNA quantification tables from gene IDs to
	// contigs, and enables derivation of the Contig column.
	// Runtime-only, set by CLI.
	DidAssembly bool `yaml:"-" mapstructure:"-"`

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `yaml:"-" mapstructure:"-"`
}

// ReportConfig contains settings for report construction.
type ReportConfig struct {
	// MaxSheetRows is the row threshold above which a sample's sheet in
	// the consolidated workbook is split into numbered chunks.
	MaxSheetRows int `mapstructure:"max_sheet_rows" yaml:"max_sheet_rows"`

	// ProteinFDR is the local false discovery rate, in percent, applied
	// when joining PeptideShaker protein reports into spectral counts.
	// Zero disables the filter.
	ProteinFDR float64 `mapstructure:"protein_fdr" yaml:"protein_fdr"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Report: ReportConfig{
			MaxSheetRows: 1_000_000,
			ProteinFDR:   5,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
