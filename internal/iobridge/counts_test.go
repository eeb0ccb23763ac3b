package iobridge_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raseique/MOSCA/internal/iobridge"
	"github.com/raseique/MOSCA/pkg/config"
	"github.com/raseique/MOSCA/pkg/exps"
	"github.com/raseique/MOSCA/pkg/table"
)

func countsManifest(t *testing.T, dir string) *exps.Experiments {
	t.Helper()
	path := filepath.Join(dir, "exps.tsv")
	content := "Name\tSample\tData type\tFiles\n" +
		"mp1\ts1\tprotein\tspectra/mp1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	res, err := exps.Load(path)
	require.NoError(t, err)
	return res
}

func countsConfig(t *testing.T, out string) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Update([]config.Option{config.OptOutputDir(out)})
	return cfg
}

func TestWriteSampleCounts(t *testing.T) {
	out := t.TempDir()
	sampleDir := filepath.Join(out, "Metaproteomics", "s1")
	require.NoError(t, os.MkdirAll(sampleDir, 0755))

	writeFile(t, sampleDir, "s1_mp1_1_Default_Protein_Report.txt",
		proteinReport(
			"0\torf_1\tdesc\t5\t99.5\tConfident\n"+
				"1\torf_2\tdesc\t2\t99.0\tConfident\n"))
	writeFile(t, sampleDir, "db_to_uniprot.blast",
		blastRow("orf_1", "sp|NAME|P12345")+
			blastRow("orf_2", "sp|NAME|Q67890"))

	cfg := countsConfig(t, out)
	manifest := countsManifest(t, out)
	require.NoError(t, iobridge.WriteSampleCounts(cfg, manifest))

	outPath := filepath.Join(out, "Metaproteomics", "s1_mp.spectracounts")
	res, err := table.ReadFile(outPath, table.ReadOpts{Header: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Main Accession", "mp1"}, res.Headers())
	require.Equal(t, 2, res.NRows())
	assert.Equal(t, "P12345", res.Cell(0, "Main Accession"))
	assert.Equal(t, "5", res.Cell(0, "mp1"))
}

func TestWriteSampleCountsUniprotDatabase(t *testing.T) {
	out := t.TempDir()
	sampleDir := filepath.Join(out, "Metaproteomics", "s1")
	require.NoError(t, os.MkdirAll(sampleDir, 0755))

	// no alignment table, accessions are already UniProt
	writeFile(t, sampleDir, "s1_mp1_1_Default_Protein_Report.txt",
		proteinReport("0\tP12345\tdesc\t7\t99.5\tConfident\n"))

	cfg := countsConfig(t, out)
	manifest := countsManifest(t, out)
	require.NoError(t, iobridge.WriteSampleCounts(cfg, manifest))

	outPath := filepath.Join(out, "Metaproteomics", "s1_mp.spectracounts")
	res, err := table.ReadFile(outPath, table.ReadOpts{Header: true})
	require.NoError(t, err)
	require.Equal(t, 1, res.NRows())
	assert.Equal(t, "P12345", res.Cell(0, "Main Accession"))
	assert.Equal(t, "7", res.Cell(0, "mp1"))
}

func TestWriteSampleCountsKeepsExisting(t *testing.T) {
	out := t.TempDir()
	require.NoError(t,
		os.MkdirAll(filepath.Join(out, "Metaproteomics"), 0755))
	outPath := filepath.Join(out, "Metaproteomics", "s1_mp.spectracounts")
	existing := "Main Accession\tmp1\nP12345\t3\n"
	require.NoError(t, os.WriteFile(outPath, []byte(existing), 0644))

	cfg := countsConfig(t, out)
	manifest := countsManifest(t, out)
	require.NoError(t, iobridge.WriteSampleCounts(cfg, manifest))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, existing, string(data),
		"an upstream table must not be rebuilt")
}

func TestWriteSampleCountsNoReports(t *testing.T) {
	out := t.TempDir()
	require.NoError(t,
		os.MkdirAll(filepath.Join(out, "Metaproteomics", "s1"), 0755))

	cfg := countsConfig(t, out)
	manifest := countsManifest(t, out)
	require.NoError(t, iobridge.WriteSampleCounts(cfg, manifest))

	_, err := os.Stat(
		filepath.Join(out, "Metaproteomics", "s1_mp.spectracounts"))
	assert.True(t, os.IsNotExist(err))
}
