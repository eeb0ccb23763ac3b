// Package iosummary derives the run-level summary table: one row per
// experiment with gene and annotation counts of its sample. Inputs a
// step never produced are skipped, leaving the cells empty, because a
// partial run is still worth summarizing.
package iosummary

import (
	"bufio"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/raseique/MOSCA/pkg/config"
	"github.com/raseique/MOSCA/pkg/exps"
	"github.com/raseique/MOSCA/pkg/table"
)

// stats holds one sample's counts, already rendered for the table.
type stats struct {
	genes      string
	upimapi    string
	recognizer string
}

// Write assembles the summary table and writes it to
// MOSCA_Summary_Report.tsv in the output directory.
func Write(cfg *config.Config, manifest *exps.Experiments) error {
	res := table.New(
		"Name", "Sample", "Data type",
		"# genes",
		"# annotations (UPIMAPI)",
		"# annotations (reCOGnizer)",
	)

	cache := make(map[string]stats)
	for _, e := range manifest.All() {
		st, ok := cache[e.Sample]
		if !ok {
			st = sampleStats(cfg.OutputDir, e.Sample)
			cache[e.Sample] = st
		}
		res.AppendRow(
			e.Name, e.Sample, e.DataType,
			st.genes, st.upimapi, st.recognizer,
		)
	}

	path := filepath.Join(cfg.OutputDir, "MOSCA_Summary_Report.tsv")
	if err := res.WriteFile(path); err != nil {
		return writeError(path, err)
	}
	slog.Info("Wrote summary report",
		"path", path,
		"experiments", res.NRows(),
	)
	gn.Message("<em>Summarized %s experiments in %s</em>",
		humanize.Comma(int64(res.NRows())), path)
	return nil
}

// sampleStats counts a sample's genes and distinct annotated queries.
// Missing input files leave their counts empty.
func sampleStats(outDir, sample string) stats {
	annotDir := filepath.Join(outDir, "Annotation", sample)
	var res stats

	if n, err := countGenes(filepath.Join(annotDir, "fgs.faa")); err == nil {
		res.genes = strconv.Itoa(n)
	} else {
		slog.Debug("Skipping gene count", "sample", sample, "error", err)
	}

	upi := filepath.Join(annotDir, "UPIMAPI_results.tsv")
	if n, err := countQueries(upi); err == nil {
		res.upimapi = strconv.Itoa(n)
	} else {
		slog.Debug("Skipping annotation count", "path", upi, "error", err)
	}

	cog := filepath.Join(annotDir, "COG_report.tsv")
	if n, err := countQueries(cog); err == nil {
		res.recognizer = strconv.Itoa(n)
	} else {
		slog.Debug("Skipping annotation count", "path", cog, "error", err)
	}
	return res
}

// countGenes counts header lines of a FASTA file.
func countGenes(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		if strings.HasPrefix(sc.Text(), ">") {
			n++
		}
	}
	return n, sc.Err()
}

// countQueries counts the distinct qseqid values of an annotation
// table.
func countQueries(path string) (int, error) {
	tbl, err := table.ReadFile(path, table.ReadOpts{Header: true})
	if err != nil {
		return 0, err
	}
	vals, err := tbl.ColumnValues("qseqid")
	if err != nil {
		return 0, err
	}
	seen := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		seen[v] = struct{}{}
	}
	return len(seen), nil
}
