package cmd

import (
	"github.com/gnames/gn"
	"github.com/raseique/MOSCA/internal/iosummary"
	"github.com/raseique/MOSCA/pkg/config"
	"github.com/raseique/MOSCA/pkg/exps"
	"github.com/spf13/cobra"
)

// getSummaryCmd returns the summary command.
// Extracted as a function to facilitate testing.
func getSummaryCmd() *cobra.Command {
	var (
		outputDir string
		expsFile  string
	)

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Build the run-level summary table",
		Long: `Summarize the run: one row per experiment with the gene count of
its sample and the number of distinct genes each annotation tool
covered. Steps whose inputs are missing leave empty cells, so a
partial run still summarizes.

The table is written to MOSCA_Summary_Report.tsv in the output
directory.

Examples:
  mosca summary -o results -e exps.tsv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSummary(outputDir, expsFile)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	summaryCmd.Flags().StringVarP(
		&outputDir, "output", "o", "",
		"directory with upstream results and report outputs",
	)
	summaryCmd.Flags().StringVarP(
		&expsFile, "experiments", "e", "",
		"experiment manifest (exps.tsv)",
	)
	_ = summaryCmd.MarkFlagRequired("output")
	_ = summaryCmd.MarkFlagRequired("experiments")

	return summaryCmd
}

func runSummary(outputDir, expsFile string) error {
	cfg.Update([]config.Option{
		config.OptOutputDir(outputDir),
		config.OptExpsFile(expsFile),
	})

	manifest, err := exps.Load(cfg.ExpsFile)
	if err != nil {
		return err
	}

	return iosummary.Write(cfg, manifest)
}
