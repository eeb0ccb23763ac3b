// Package ioaggregate combines the Entry-keyed quantification columns
// of the per-sample reports into one matrix per data type and writes
// the matrices together with the differential-expression input.
// This is an impure I/O package that writes into the run's output
// tree.
package ioaggregate

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/raseique/MOSCA/pkg/config"
	"github.com/raseique/MOSCA/pkg/exps"
	"github.com/raseique/MOSCA/pkg/report"
	"github.com/raseique/MOSCA/pkg/table"
)

// aggregator implements the Aggregator interface. The three matrices
// grow by outer joins as samples are collected, so columns appear in
// sample order and each matrix holds the union of entries seen so far.
type aggregator struct {
	cfg      *config.Config
	manifest *exps.Experiments
	mg       *table.Table
	mt       *table.Table
	mp       *table.Table
	noEntry  int
}

// New creates a new Aggregator.
func New(cfg *config.Config, manifest *exps.Experiments) report.Aggregator {
	return &aggregator{
		cfg:      cfg,
		manifest: manifest,
		mg:       table.New("Entry"),
		mt:       table.New("Entry"),
		mp:       table.New("Entry"),
	}
}

// Collect folds one sample's quantification columns into the running
// matrices. Rows without a resolvable Entry carry counts that cannot
// be attributed to a protein, so they are excluded and counted.
// Within the sample, counts of genes sharing an Entry are summed
// before the fold; cross-sample summing happens in Finalize.
func (a *aggregator) Collect(sample string, rep *table.Table) error {
	if !rep.HasColumn("Entry") {
		slog.Warn("Sample report carries no Entry column",
			"sample", sample)
		return nil
	}

	types := []struct {
		dataType string
		matrix   **table.Table
	}{
		{exps.DNA, &a.mg},
		{exps.RNA, &a.mt},
		{exps.Protein, &a.mp},
	}
	for _, v := range types {
		names := a.manifest.Names(sample, v.dataType)
		if len(names) == 0 {
			continue
		}
		part, err := rep.Select(append([]string{"Entry"}, names...)...)
		if err != nil {
			return entryError(sample, err)
		}

		dropped := 0
		part.FilterRows(func(row []string) bool {
			if part.RowValue(row, "Entry") == "" {
				dropped++
				return false
			}
			return true
		})
		if dropped > 0 {
			a.noEntry += dropped
			slog.Warn("Excluded rows without an Entry from aggregation",
				"sample", sample,
				"data_type", v.dataType,
				"rows", dropped,
			)
		}

		if part, err = part.GroupSum("Entry"); err != nil {
			return entryError(sample, err)
		}
		if *v.matrix, err = (*v.matrix).OuterJoin(part, "Entry"); err != nil {
			return entryError(sample, err)
		}
	}
	return nil
}

// Finalize sums each matrix per Entry across samples and writes the
// matrices. DNA and RNA matrices go under Quantification/, the protein
// one under Metaproteomics/. The RNA matrix doubles as the
// differential-expression input until protein evidence overrides it.
func (a *aggregator) Finalize(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if a.noEntry > 0 {
		slog.Info("Rows excluded from aggregation for lacking an Entry",
			"rows", a.noEntry)
	}

	quantDir := filepath.Join(a.cfg.OutputDir, "Quantification")
	protDir := filepath.Join(a.cfg.OutputDir, "Metaproteomics")
	deaPath := filepath.Join(quantDir, "dea_input.tsv")

	if a.mg.NRows() > 0 {
		final, err := a.mg.GroupSum("Entry")
		if err != nil {
			return err
		}
		err = a.writeMatrix(final, filepath.Join(quantDir, "mg_entry_quant.tsv"))
		if err != nil {
			return err
		}
	}

	if a.mt.NRows() > 0 {
		final, err := a.mt.GroupSum("Entry")
		if err != nil {
			return err
		}
		err = a.writeMatrix(final, filepath.Join(quantDir, "mt_entry_quant.tsv"))
		if err != nil {
			return err
		}
		if err = a.writeMatrix(final, deaPath); err != nil {
			return err
		}
	}

	if a.mp.NRows() > 0 {
		final, err := a.collapseProtein()
		if err != nil {
			return err
		}
		err = a.writeMatrix(final, filepath.Join(protDir, "mp_entry_quant.tsv"))
		if err != nil {
			return err
		}
		// protein evidence is the stronger signal for differential
		// expression and replaces the RNA-derived input
		if err = a.writeMatrix(final, deaPath); err != nil {
			return err
		}
	}
	return nil
}

// collapseProtein sums the protein matrix per Entry and then drops
// exact-duplicate rows and rows missing a value in any replicate
// column. Both drops are counted so the data loss stays visible.
func (a *aggregator) collapseProtein() (*table.Table, error) {
	final, err := a.mp.GroupSum("Entry")
	if err != nil {
		return nil, err
	}

	dups := final.DropExactDuplicates()
	if dups > 0 {
		slog.Info("Dropped duplicate protein rows", "rows", dups)
	}

	var names []string
	for _, col := range final.Columns() {
		if col.Name != "Entry" {
			names = append(names, col.Name)
		}
	}
	sparse, err := final.DropMissing(names)
	if err != nil {
		return nil, err
	}
	if sparse > 0 {
		slog.Info("Dropped protein rows without quantification",
			"rows", sparse)
	}
	return final, nil
}

func (a *aggregator) writeMatrix(tbl *table.Table, path string) error {
	if err := tbl.WriteFile(path); err != nil {
		return writeError(path, err)
	}
	slog.Info("Wrote quantification matrix",
		"path", path,
		"entries", tbl.NRows(),
	)
	gn.Message("<em>Wrote %s entries to %s</em>",
		humanize.Comma(int64(tbl.NRows())), path)
	return nil
}
