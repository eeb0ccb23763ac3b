package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/raseique/MOSCA/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "mosca"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "mosca", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "mosca", "mosca.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		// Report defaults
		assert.Equal(t, 1_000_000, cfg.Report.MaxSheetRows)
		assert.Equal(t, float64(5), cfg.Report.ProteinFDR)

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		// JobsNumber defaults to CPU count
		assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
	})
}

func TestOptionReportMaxSheetRows(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{
			name:     "sets valid threshold",
			input:    500,
			expected: 500,
		},
		{
			name:     "ignores zero",
			input:    0,
			expected: 1_000_000,
		},
		{
			name:     "ignores negative",
			input:    -3,
			expected: 1_000_000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptReportMaxSheetRows(tt.input)})
			assert.Equal(t, tt.expected, cfg.Report.MaxSheetRows)
		})
	}
}

func TestOptionOutputDir(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptOutputDir(" /data/run1/ ")})
	assert.Equal(t, "/data/run1", cfg.OutputDir)

	cfg.Update([]config.Option{config.OptOutputDir("")})
	assert.Equal(t, "/data/run1", cfg.OutputDir, "empty value is ignored")
}

func TestOptionLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid level",
			input:    "debug",
			expected: "debug",
		},
		{
			name:     "normalizes case",
			input:    "WARN",
			expected: "warn",
		},
		{
			name:     "ignores invalid value",
			input:    "loud",
			expected: "info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLogLevel(tt.input)})
			assert.Equal(t, tt.expected, cfg.Log.Level)
		})
	}
}

func TestToOptionsRoundTrip(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptReportMaxSheetRows(42),
		config.OptLogFormat("text"),
		config.OptJobsNumber(3),
	})

	res := config.New()
	res.Update(cfg.ToOptions())

	assert.Equal(t, cfg.Report, res.Report)
	assert.Equal(t, cfg.Log, res.Log)
	assert.Equal(t, cfg.JobsNumber, res.JobsNumber)
}

func TestRuntimeFieldsNotInToOptions(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptOutputDir("/data/run1"),
		config.OptExpsFile("/data/exps.tsv"),
		config.OptDidAssembly(true),
	})

	res := config.New()
	res.Update(cfg.ToOptions())

	assert.Empty(t, res.OutputDir)
	assert.Empty(t, res.ExpsFile)
	assert.False(t, res.DidAssembly)
}
