package ioreport

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/raseique/MOSCA/pkg/table"
)

// Source tags of the two annotators. Columns both tools emit, such as
// the alignment statistics, keep their tag and come out suffixed in
// the written report.
const (
	upimapiSource    = "UPIMAPI"
	recognizerSource = "reCOGnizer"
)

// fastaHeaders returns the native IDs of a gene-calling FASTA file in
// file order. The native ID is the first whitespace-delimited token of
// a header line.
func fastaHeaders(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fastaError(path, err)
	}
	defer f.Close()

	var res []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, ">") {
			continue
		}
		fields := strings.Fields(line[1:])
		if len(fields) > 0 {
			res = append(res, fields[0])
		}
	}
	if err = sc.Err(); err != nil {
		return nil, fastaError(path, err)
	}
	return res, nil
}

// featureTable builds a sample's annotated feature table. The feature
// universe comes from the gene-calling FASTA; the reCOGnizer and
// UPIMAPI tables are deduplicated to their first hit per query and
// left-joined onto it, so every gene keeps exactly one row whether or
// not it was annotated. With assembly a Contig column is derived from
// the query IDs for the contig-keyed quantification join.
func (r *reporter) featureTable(sample string) (*table.Table, error) {
	annotDir := filepath.Join(r.cfg.OutputDir, "Annotation", sample)

	ids, err := fastaHeaders(filepath.Join(annotDir, "fgs.faa"))
	if err != nil {
		return nil, err
	}
	res := table.New("qseqid")
	for _, id := range ids {
		res.AppendRow(id)
	}

	cogPath := filepath.Join(annotDir, "COG_report.tsv")
	cog, err := table.ReadFile(
		cogPath, table.ReadOpts{Header: true, Source: recognizerSource})
	if err != nil {
		return nil, annotationError(sample, cogPath, err)
	}
	// reCOGnizer reports hits against several databases; only the COG
	// assignments take part in the general report.
	cog.FilterRows(func(row []string) bool {
		return strings.HasPrefix(cog.RowValue(row, "DB ID"), "COG")
	})
	if err = cog.Rename("DB ID", "COG ID"); err != nil {
		return nil, annotationError(sample, cogPath, err)
	}
	if err = cog.DedupFirst("qseqid"); err != nil {
		return nil, annotationError(sample, cogPath, err)
	}
	if res, err = res.LeftJoin(cog, "qseqid"); err != nil {
		return nil, annotationError(sample, cogPath, err)
	}

	upiPath := filepath.Join(annotDir, "UPIMAPI_results.tsv")
	upi, err := table.ReadFile(
		upiPath, table.ReadOpts{Header: true, Source: upimapiSource})
	if err != nil {
		return nil, annotationError(sample, upiPath, err)
	}
	if err = upi.DedupFirst("qseqid"); err != nil {
		return nil, annotationError(sample, upiPath, err)
	}
	if res, err = res.LeftJoin(upi, "qseqid"); err != nil {
		return nil, annotationError(sample, upiPath, err)
	}

	if r.cfg.DidAssembly {
		res.AddColumn("Contig", func(row []string) string {
			return contigOf(res.RowValue(row, "qseqid"))
		})
	}
	return res, nil
}

// contigOf extracts the contig ordinal from a gene-caller query ID of
// the form <sample>_<contig>_<orf>.
func contigOf(id string) string {
	parts := strings.Split(id, "_")
	if len(parts) > 1 {
		return parts[1]
	}
	return id
}
