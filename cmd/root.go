// Package cmd assembles the mosca command tree and the startup
// bootstrap: home directories, logging, and layered configuration
// (flags over environment over mosca.yaml over defaults).
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/raseique/MOSCA/internal/iofs"
	"github.com/raseique/MOSCA/internal/iologger"
	app "github.com/raseique/MOSCA/pkg"
	"github.com/raseique/MOSCA/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
// Extracted as a function to facilitate testing.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "mosca",
		Short:   "mosca reconciles multi-omics annotation and quantification",
		Long: `mosca builds the final reports of a multi-omics analysis run. It
reconciles the outputs of upstream annotation and quantification tools
into per-sample general reports, one consolidated workbook, and
cross-sample quantification matrices ready for differential analysis.

The tool provides two commands:
  - report:  per-sample reports, workbook and Entry-level matrices
  - summary: run-level table of gene and annotation counts

Configuration precedence (highest to lowest):
  1. CLI flags (--output, --experiments, ...)
  2. Environment variables (MOSCA_*)
  3. Config file (~/.config/mosca/mosca.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (log.level becomes MOSCA_LOG_LEVEL).

    MOSCA_REPORT_MAX_SHEET_ROWS   workbook sheet row threshold
    MOSCA_REPORT_PROTEIN_FDR      protein local FDR percentage
    MOSCA_LOG_LEVEL               log level (debug/info/warn/error)
    MOSCA_LOG_FORMAT              log format (json/text)
    MOSCA_LOG_DESTINATION         log destination (file/stderr/stdout)
    MOSCA_JOBS_NUMBER             concurrent quantification readers`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "mosca version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V
	rootCmd.Flags().BoolP("version", "V", false, "version for mosca")

	rootCmd.AddCommand(getReportCmd())
	rootCmd.AddCommand(getSummaryCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info(
		"Configuration files are available at <em>%s</em>",
		config.ConfigDir(homeDir),
	)

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings
	if err = iologger.Init(config.LogDir(homeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	versionFlag(cmd)
	return cmd.Help()
}

// Execute runs the root command. It is called once by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables
	// are allowed. These match the fields included in
	// config.ToOptions(), i.e. persistent configuration that can be
	// stored in mosca.yaml.
	v.SetEnvPrefix("MOSCA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Report configuration
	v.BindEnv("report.max_sheet_rows", "MOSCA_REPORT_MAX_SHEET_ROWS")
	v.BindEnv("report.protein_fdr", "MOSCA_REPORT_PROTEIN_FDR")

	// Log configuration
	v.BindEnv("log.level", "MOSCA_LOG_LEVEL")
	v.BindEnv("log.format", "MOSCA_LOG_FORMAT")
	v.BindEnv("log.destination", "MOSCA_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "MOSCA_JOBS_NUMBER")

	v.AutomaticEnv()
}
