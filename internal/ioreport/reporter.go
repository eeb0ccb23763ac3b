// Package ioreport builds the per-sample general reports and drives
// the reporting run. For each sample it assembles the annotated
// feature table, joins the quantification columns onto it, writes the
// per-sample TSV, appends a sheet to the consolidated workbook and
// feeds the cross-sample aggregator.
// This is an impure I/O package that reads the file tree produced by
// upstream annotation and quantification tools.
package ioreport

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/raseique/MOSCA/pkg/config"
	"github.com/raseique/MOSCA/pkg/exps"
	"github.com/raseique/MOSCA/pkg/report"
)

// reporter implements the Builder interface.
type reporter struct {
	cfg      *config.Config
	manifest *exps.Experiments
	agg      report.Aggregator
	workbook report.Emitter
}

// New creates a new Builder.
func New(
	cfg *config.Config,
	manifest *exps.Experiments,
	agg report.Aggregator,
	workbook report.Emitter,
) report.Builder {
	return &reporter{
		cfg:      cfg,
		manifest: manifest,
		agg:      agg,
		workbook: workbook,
	}
}

// Run builds the report of every sample in the manifest. A failing
// sample is logged and skipped so one bad sample cannot sink the whole
// run; only when every sample fails does Run return an error. After
// the last sample the workbook is flushed and the cross-sample
// matrices are finalized.
func (r *reporter) Run(ctx context.Context) error {
	startTime := time.Now()
	samples := r.manifest.Samples()
	slog.Info("Starting report reconciliation", "samples", len(samples))

	successCount := 0
	errorCount := 0

	bar := pb.Full.Start(len(samples))
	bar.Set("prefix", "Building reports: ")
	bar.Set(pb.CleanOnFinish, true)

	for i, sample := range samples {
		sampleStart := time.Now()
		slog.Info("Processing sample",
			"index", i+1,
			"total", len(samples),
			"sample", sample,
		)

		select {
		case <-ctx.Done():
			bar.Finish()
			return ctx.Err()
		default:
		}

		err := r.processSample(ctx, sample)
		if err != nil {
			errorCount++
			slog.Error("Failed to build sample report",
				"sample", sample,
				"error", err,
			)
			// Continue with next sample instead of failing
			bar.Increment()
			continue
		}

		successCount++
		slog.Info("Sample report ready",
			"sample", sample,
			"duration", gnfmt.TimeString(time.Since(sampleStart).Seconds()),
		)
		bar.Increment()
	}
	bar.Finish()

	if successCount > 0 {
		workbookPath := filepath.Join(
			r.cfg.OutputDir, "MOSCA_General_Report.xlsx")
		if err := r.workbook.Close(workbookPath); err != nil {
			return err
		}
		gn.Message("<em>Wrote workbook %s</em>", workbookPath)

		if err := r.agg.Finalize(ctx); err != nil {
			return err
		}
	}

	totalDuration := time.Since(startTime)
	slog.Info("Reporting complete",
		"success", successCount,
		"errors", errorCount,
		"total", len(samples),
		"duration", gnfmt.TimeString(totalDuration.Seconds()),
	)
	gn.Info(`Reporting complete
Samples succeeded: %d, failed %d, total %d.
    Elapsed time: <em>%s</em>
`,
		successCount,
		errorCount,
		len(samples),
		gnfmt.TimeString(totalDuration.Seconds()),
	)

	if errorCount > 0 && successCount == 0 {
		return allSamplesFailedError(errorCount)
	}
	if errorCount > 0 {
		slog.Warn("Some samples failed to report",
			"failed", errorCount,
			"succeeded", successCount)
	}
	return nil
}

// processSample builds and emits one sample's report.
func (r *reporter) processSample(ctx context.Context, sample string) error {
	features, err := r.featureTable(sample)
	if err != nil {
		return err
	}
	gn.Info("Sample <em>%s</em>: %s features",
		sample, humanize.Comma(int64(features.NRows())))

	quant, err := r.readQuantification(ctx, sample)
	if err != nil {
		return err
	}

	full, err := r.joinQuantification(sample, features, quant)
	if err != nil {
		return err
	}

	path := filepath.Join(
		r.cfg.OutputDir, "MOSCA_"+sample+"_General_Report.tsv")
	if err = full.WriteFile(path); err != nil {
		return err
	}
	slog.Info("Wrote sample report",
		"sample", sample,
		"path", path,
		"rows", full.NRows(),
	)

	if err = r.workbook.AddTable(sample, full); err != nil {
		return err
	}
	return r.agg.Collect(sample, full)
}
