// Package ioquant folds per-experiment readcount files into
// sample-level quantification tables. Upstream alignment writes one
// normalized readcounts file per experiment; reports need one table
// per sample and data type, with the join key first and one column per
// experiment in manifest order.
package ioquant

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gnsys"
	"github.com/raseique/MOSCA/pkg/config"
	"github.com/raseique/MOSCA/pkg/exps"
	"github.com/raseique/MOSCA/pkg/table"
)

// Fold combines the per-experiment normalized readcounts of every
// sample into Quantification/<sample>/mg.readcounts (Contig-keyed) and
// mt.readcounts (Gene-keyed). Samples or data types without readcount
// files are skipped; that is a partial-data condition, not an error.
func Fold(cfg *config.Config, manifest *exps.Experiments) error {
	for _, sample := range manifest.Samples() {
		if err := foldSample(cfg, manifest, sample); err != nil {
			return err
		}
	}
	return nil
}

func foldSample(
	cfg *config.Config, manifest *exps.Experiments, sample string,
) error {
	mg := table.New("Contig")
	mt := table.New("Gene")

	for _, e := range manifest.ForSample(sample) {
		var key string
		switch e.DataType {
		case exps.DNA:
			key = "Contig"
		case exps.RNA:
			key = "Gene"
		default:
			continue
		}

		path := filepath.Join(
			cfg.OutputDir, "Quantification",
			e.Name+"_normalized.readcounts")
		if _, err := os.Stat(path); err != nil {
			slog.Warn("No readcounts for experiment, skipping",
				"experiment", e.Name, "path", path)
			continue
		}

		counts, err := table.ReadFile(path, table.ReadOpts{
			Names: []string{key, e.Name},
		})
		if err != nil {
			return err
		}

		if e.DataType == exps.DNA {
			mg, err = mg.OuterJoin(counts, key)
		} else {
			mt, err = mt.OuterJoin(counts, key)
		}
		if err != nil {
			return err
		}
	}

	if mg.NRows() == 0 && mt.NRows() == 0 {
		return nil
	}

	dir := filepath.Join(cfg.OutputDir, "Quantification", sample)
	if err := gnsys.MakeDir(dir); err != nil {
		return fmt.Errorf("cannot create %s: %w", dir, err)
	}

	if mg.NRows() > 0 {
		if err := mg.WriteFile(filepath.Join(dir, "mg.readcounts")); err != nil {
			return err
		}
		slog.Info("Wrote sample DNA readcounts",
			"sample", sample, "rows", mg.NRows())
	}
	if mt.NRows() > 0 {
		if err := mt.WriteFile(filepath.Join(dir, "mt.readcounts")); err != nil {
			return err
		}
		slog.Info("Wrote sample RNA readcounts",
			"sample", sample, "rows", mt.NRows())
	}
	return nil
}
