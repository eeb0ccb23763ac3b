package iobridge

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/raseique/MOSCA/pkg/config"
	"github.com/raseique/MOSCA/pkg/exps"
)

// uniprotBlast is the alignment of the search database against
// UniProt, written by the metaproteomics preparation step. When the
// file is absent the database was built from UniProt sequences and
// accessions need no bridging.
const uniprotBlast = "db_to_uniprot.blast"

// WriteSampleCounts assembles the spectral-count table of every sample
// with protein experiments and writes it to
// Metaproteomics/<sample>_mp.spectracounts. Samples whose table
// already exists keep it; samples without PeptideShaker reports are
// skipped with a warning. The configured protein FDR filters the
// reports before counting.
func WriteSampleCounts(cfg *config.Config, manifest *exps.Experiments) error {
	for _, sample := range manifest.Samples() {
		names := manifest.Names(sample, exps.Protein)
		if len(names) == 0 {
			continue
		}

		outPath := filepath.Join(
			cfg.OutputDir, "Metaproteomics", sample+"_mp.spectracounts")
		if _, err := os.Stat(outPath); err == nil {
			slog.Info("Spectral counts already assembled",
				"sample", sample, "path", outPath)
			continue
		}

		sampleDir := filepath.Join(cfg.OutputDir, "Metaproteomics", sample)
		files, err := filepath.Glob(
			filepath.Join(sampleDir, "*_Default_Protein_Report.txt"))
		if err != nil {
			return spectraError(sampleDir, err)
		}
		if len(files) == 0 {
			slog.Warn("No protein reports for sample, skipping counts",
				"sample", sample, "dir", sampleDir)
			continue
		}

		// one report per replicate lets the manifest name the columns;
		// otherwise names come from the report filenames
		colNames := names
		if len(files) != len(names) {
			colNames = nil
		}

		blastPath := filepath.Join(sampleDir, uniprotBlast)
		uniprotIDs := false
		if _, err = os.Stat(blastPath); err != nil {
			uniprotIDs = true
		}

		counts, err := SpectraCounts(
			files, colNames, blastPath, uniprotIDs, cfg.Report.ProteinFDR)
		if err != nil {
			// the sample fails later at the quantification join, other
			// samples still get their counts
			slog.Error("Cannot assemble spectral counts",
				"sample", sample, "error", err)
			continue
		}
		if err = counts.WriteFile(outPath); err != nil {
			return spectraError(outPath, err)
		}
		slog.Info("Wrote spectral counts",
			"sample", sample,
			"path", outPath,
			"accessions", counts.NRows(),
		)
	}
	return nil
}
