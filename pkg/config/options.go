package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptReportMaxSheetRows sets the row threshold for splitting workbook
// sheets into numbered chunks.
func OptReportMaxSheetRows(i int) Option {
	return func(c *Config) {
		if isValidInt("Max Sheet Rows", i) {
			c.Report.MaxSheetRows = i
		}
	}
}

// OptReportProteinFDR sets the local FDR (percent) used when filtering
// PeptideShaker protein reports. Zero disables the filter.
func OptReportProteinFDR(f float64) Option {
	return func(c *Config) {
		if f >= 0 && f <= 100 {
			c.Report.ProteinFDR = f
		}
	}
}

// OptOutputDir sets the output directory for the run.
// Runtime-only field - not in ToOptions().
func OptOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "/")
	return func(c *Config) {
		if isValidString("Output Directory", s) {
			c.OutputDir = s
		}
	}
}

// OptExpsFile sets the path to the experiment manifest.
// Runtime-only field - not in ToOptions().
func OptExpsFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Experiments File", s) {
			c.ExpsFile = s
		}
	}
}

// OptDidAssembly records whether assembly was performed upstream.
// Runtime-only field - not in ToOptions().
func OptDidAssembly(b bool) Option {
	return func(c *Config) {
		c.DidAssembly = b
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel
// operations. Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
