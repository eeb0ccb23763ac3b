package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/gnames/gn"
	"github.com/raseique/MOSCA/internal/ioaggregate"
	"github.com/raseique/MOSCA/internal/iobridge"
	"github.com/raseique/MOSCA/internal/ioemit"
	"github.com/raseique/MOSCA/internal/iofs"
	"github.com/raseique/MOSCA/internal/ioquant"
	"github.com/raseique/MOSCA/internal/ioreport"
	"github.com/raseique/MOSCA/pkg/config"
	"github.com/raseique/MOSCA/pkg/exps"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// getReportCmd returns the report command.
// Extracted as a function to facilitate testing.
func getReportCmd() *cobra.Command {
	var (
		outputDir    string
		expsFile     string
		noAssembly   bool
		maxSheetRows int
	)

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Build per-sample reports and cross-sample matrices",
		Long: `Reconcile upstream annotation and quantification outputs into the
final reports of the run.

This command:
  1. Loads and validates the experiment manifest (exps.tsv)
  2. Folds per-experiment readcounts into sample-level tables
  3. Assembles spectral counts from PeptideShaker protein reports,
     bridging native accessions to UniProt where needed
  4. Builds one annotated feature table per sample
  5. Joins DNA, RNA and protein quantification onto it
  6. Writes MOSCA_<sample>_General_Report.tsv per sample and one
     consolidated MOSCA_General_Report.xlsx workbook
  7. Aggregates Entry-level matrices and the differential-expression
     input under Quantification/ and Metaproteomics/

The output directory is the one upstream tools wrote into; it must
hold Annotation/, Quantification/ and, with protein data,
Metaproteomics/.

Examples:
  # Reports for an assembled run
  mosca report -o results -e exps.tsv

  # Gene-keyed quantification, no assembly upstream
  mosca report -o results -e exps.tsv --no-assembly

  # Split workbook sheets earlier
  mosca report -o results -e exps.tsv --max-sheet-rows 500000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runReport(cmd, outputDir, expsFile, noAssembly, maxSheetRows)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	reportCmd.Flags().StringVarP(
		&outputDir, "output", "o", "",
		"directory with upstream results and report outputs",
	)
	reportCmd.Flags().StringVarP(
		&expsFile, "experiments", "e", "",
		"experiment manifest (exps.tsv)",
	)
	reportCmd.Flags().BoolVar(
		&noAssembly, "no-assembly", false,
		"quantification is gene-keyed, no assembly upstream",
	)
	reportCmd.Flags().IntVar(
		&maxSheetRows, "max-sheet-rows", 0,
		"workbook sheet row threshold (default from config)",
	)
	_ = reportCmd.MarkFlagRequired("output")
	_ = reportCmd.MarkFlagRequired("experiments")

	return reportCmd
}

func runReport(
	cmd *cobra.Command,
	outputDir string,
	expsFile string,
	noAssembly bool,
	maxSheetRows int,
) error {
	ctx := context.Background()

	reportOpts := []config.Option{
		config.OptOutputDir(outputDir),
		config.OptExpsFile(expsFile),
		config.OptDidAssembly(!noAssembly),
	}
	if cmd.Flags().Changed("max-sheet-rows") {
		reportOpts = append(
			reportOpts, config.OptReportMaxSheetRows(maxSheetRows))
	}
	cfg.Update(reportOpts)

	manifest, err := exps.Load(cfg.ExpsFile)
	if err != nil {
		return err
	}
	gn.Info("Manifest <em>%s</em>: %d experiments over %d samples",
		cfg.ExpsFile, len(manifest.All()), len(manifest.Samples()))

	if err = iofs.EnsureOutputTree(cfg.OutputDir); err != nil {
		return err
	}
	if err = writeConfigSnapshot(cfg); err != nil {
		return err
	}

	gn.Info("(1/3) Folding per-experiment readcounts...")
	if err = ioquant.Fold(cfg, manifest); err != nil {
		return err
	}

	gn.Info("(2/3) Assembling spectral counts...")
	if err = iobridge.WriteSampleCounts(cfg, manifest); err != nil {
		return err
	}

	gn.Info("(3/3) Building sample reports...")
	agg := ioaggregate.New(cfg, manifest)
	workbook := ioemit.NewWorkbook(cfg.Report.MaxSheetRows)
	builder := ioreport.New(cfg, manifest, agg, workbook)
	if err = builder.Run(ctx); err != nil {
		return err
	}

	gn.Info(`Next steps:
	 - Inspect '<em>MOSCA_General_Report.xlsx</em>'
	 - Feed '<em>Quantification/dea_input.tsv</em>' to differential analysis
	 - Run '<em>mosca summary</em>' for run-level counts
`)

	return nil
}

// writeConfigSnapshot records the effective settings next to the
// outputs so a run can be traced back to its configuration.
func writeConfigSnapshot(cfg *config.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	path := filepath.Join(cfg.OutputDir, "config_used.yaml")
	if err = os.WriteFile(path, data, 0644); err != nil {
		return iofs.WriteFileError(path, err)
	}
	return nil
}
