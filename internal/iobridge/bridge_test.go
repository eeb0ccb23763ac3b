package iobridge_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/raseique/MOSCA/internal/iobridge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func blastRow(q, s string) string {
	return q + "\t" + s + "\t97.0\t120\t3\t0\t1\t120\t1\t120\t1e-50\t240\n"
}

func TestAccession(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "pipe-delimited", in: "sp|P12345|TRYP_PIG", out: "TRYP_PIG"},
		{name: "uniprot style", in: "tr|A0A023", out: "A0A023"},
		{name: "plain id", in: "P12345", out: "P12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.out, iobridge.Accession(tt.in))
		})
	}
}

func TestResolver(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "aligned.blast",
		blastRow("s1_1_1", "sp|NAME|P12345")+
			blastRow("s1_1_1", "sp|OTHER|Q99999")+ // later hit loses
			blastRow("s1_1_2", "*")) // no hit

	alignment, err := iobridge.ParseBlast(path)
	require.NoError(t, err)
	r, err := iobridge.NewResolver(alignment)
	require.NoError(t, err)

	acc, ok := r.Resolve("s1_1_1")
	assert.True(t, ok)
	assert.Equal(t, "P12345", acc)

	_, ok = r.Resolve("s1_1_2")
	assert.False(t, ok, "no-hit rows must stay unresolved")

	_, ok = r.Resolve("s1_1_3")
	assert.False(t, ok)
}

func TestParseBlastMissingFile(t *testing.T) {
	_, err := iobridge.ParseBlast(filepath.Join(t.TempDir(), "nope.blast"))
	assert.Error(t, err, "a required alignment table must not be fabricated")
}

func proteinReport(rows string) string {
	return "\tMain Accession\tDescription\t#PSMs\tConfidence [%]\tValidation\n" + rows
}

func TestJoinProteinReports(t *testing.T) {
	dir := t.TempDir()
	f1 := writeFile(t, dir, "s1_rep1_1_Default_Protein_Report.txt",
		proteinReport(
			"0\tP12345\tdesc\t5\t99.5\tConfident\n"+
				"1\tQ67890\tdesc\t2\t80.0\tDoubtful\n"))
	f2 := writeFile(t, dir, "s1_rep2_1_Default_Protein_Report.txt",
		proteinReport("0\tP12345\tdesc\t3\t99.9\tConfident\n"))

	res, err := iobridge.JoinProteinReports(
		[]string{f1, f2}, []string{"rep1", "rep2"}, 0, false)
	require.NoError(t, err)

	require.Equal(t, 2, res.NRows())
	assert.Equal(t, []string{"Main Accession", "rep1", "rep2"}, res.Headers())
	assert.Equal(t, "5", res.Cell(0, "rep1"))
	assert.Equal(t, "3", res.Cell(0, "rep2"))
	assert.Equal(t, "", res.Cell(1, "rep2"), "unmatched stays empty here")
}

func TestJoinProteinReportsFDRFilter(t *testing.T) {
	dir := t.TempDir()
	f1 := writeFile(t, dir, "s1_rep1_1_Default_Protein_Report.txt",
		proteinReport(
			"0\tP12345\tdesc\t5\t99.5\tConfident\n"+
				"1\tQ67890\tdesc\t2\t80.0\tDoubtful\n"))

	res, err := iobridge.JoinProteinReports(
		[]string{f1}, []string{"rep1"}, 5, true)
	require.NoError(t, err)

	require.Equal(t, 1, res.NRows())
	assert.Equal(t, "P12345", res.Cell(0, "Main Accession"))
}

func TestJoinProteinReportsDuplicateAccessions(t *testing.T) {
	dir := t.TempDir()
	f1 := writeFile(t, dir, "s1_rep1_1_Default_Protein_Report.txt",
		proteinReport(
			"0\tP12345\tdesc\t5\t99.5\tConfident\n"+
				"1\tP12345\tdesc\t2\t99.0\tConfident\n"))

	res, err := iobridge.JoinProteinReports(
		[]string{f1}, []string{"rep1"}, 0, false)
	require.NoError(t, err)

	require.Equal(t, 1, res.NRows(),
		"repeated accessions in one report collapse to one row")
	assert.Equal(t, "7", res.Cell(0, "rep1"))
}

func TestSpectraCountsWithBridge(t *testing.T) {
	dir := t.TempDir()
	f1 := writeFile(t, dir, "s1_rep1_1_Default_Protein_Report.txt",
		proteinReport(
			"0\torf_1\tdesc\t5\t99.5\tConfident\n"+
				"1\torf_2\tdesc\t2\t99.0\tConfident\n"+
				"2\torf_3\tdesc\t4\t99.0\tConfident\n"))
	blast := writeFile(t, dir, "aligned.blast",
		blastRow("orf_1", "sp|NAME|P12345")+
			blastRow("orf_2", "sp|NAME|P12345")+ // same protein, counts sum
			blastRow("orf_3", "*"))

	res, err := iobridge.SpectraCounts(
		[]string{f1}, []string{"rep1"}, blast, false, 0)
	require.NoError(t, err)

	require.Equal(t, 1, res.NRows(), "unresolved rows are dropped")
	assert.Equal(t, "P12345", res.Cell(0, "Main Accession"))
	assert.Equal(t, "7", res.Cell(0, "rep1"))
}

func TestSpectraCountsUniprotIDs(t *testing.T) {
	dir := t.TempDir()
	f1 := writeFile(t, dir, "s1_rep1_1_Default_Protein_Report.txt",
		proteinReport("0\tP12345\tdesc\t5\t99.5\tConfident\n"))
	f2 := writeFile(t, dir, "s1_rep2_1_Default_Protein_Report.txt",
		proteinReport("0\tQ67890\tdesc\t2\t99.5\tConfident\n"))

	res, err := iobridge.SpectraCounts(
		[]string{f1, f2}, []string{"rep1", "rep2"}, "", true, 0)
	require.NoError(t, err)

	require.Equal(t, 2, res.NRows())
	assert.Equal(t, "0", res.Cell(0, "rep2"),
		"missing counts are zero-filled")
	assert.Equal(t, "2", res.Cell(1, "rep2"))
}

func TestSpectraCountsMissingBlast(t *testing.T) {
	dir := t.TempDir()
	f1 := writeFile(t, dir, "s1_rep1_1_Default_Protein_Report.txt",
		proteinReport("0\torf_1\tdesc\t5\t99.5\tConfident\n"))

	_, err := iobridge.SpectraCounts(
		[]string{f1}, []string{"rep1"},
		filepath.Join(dir, "missing.blast"), false, 0)
	assert.Error(t, err)
}
