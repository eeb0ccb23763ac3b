package exps_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/raseique/MOSCA/pkg/exps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exps.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t,
		"Name\tSample\tData type\tFiles\n"+
			"mg1\ts1\tdna\tinput/mg1_R1.fq,input/mg1_R2.fq\n"+
			"mt1\ts1\tmrna\tinput/mt1_R1.fq,input/mt1_R2.fq\n"+
			"mp1\ts2\tprotein\tinput/mp1\n")

	e, err := exps.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"s1", "s2"}, e.Samples())
	assert.Equal(t, []string{"mg1"}, e.Names("s1", exps.DNA))
	assert.Equal(t, []string{"mt1"}, e.Names("s1", exps.RNA))
	assert.Empty(t, e.Names("s1", exps.Protein))
	assert.Equal(t, []string{"mp1"}, e.Names("s2", exps.Protein))
	assert.True(t, e.HasDataType(exps.Protein))
}

func TestLoadDerivesNames(t *testing.T) {
	path := writeManifest(t,
		"Name\tSample\tData type\tFiles\n"+
			"\ts1\tdna\tinput/mg9_R1.fq,input/mg9_R2.fq\n"+
			"\ts1\tmrna\tinput/mt9.fastq\n"+
			"\ts2\tprotein\tinput/mp9\n")

	e, err := exps.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"mg9"}, e.Names("s1", exps.DNA))
	assert.Equal(t, []string{"mt9"}, e.Names("s1", exps.RNA))
	assert.Equal(t, []string{"mp9"}, e.Names("s2", exps.Protein))
}

func TestLoadReportsDuplicatedNames(t *testing.T) {
	path := writeManifest(t,
		"Name\tSample\tData type\tFiles\n"+
			"mg1\ts1\tdna\ta.fq\n"+
			"mg1\ts1\tdna\tb.fq\n"+
			"mt1\ts1\tmrna\tc.fq\n"+
			"mt1\ts1\tmrna\td.fq\n")

	_, err := exps.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mg1",
		"error must name the duplicated experiments")
	assert.Contains(t, err.Error(), "mt1")
}

func TestLoadRejectsBadNames(t *testing.T) {
	tests := []struct {
		name    string
		expName string
	}{
		{name: "reserved R word", expName: "TRUE"},
		{name: "starts with digit", expName: "1mg"},
		{name: "dot then digit", expName: ".1mg"},
		{name: "special character", expName: "mg-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t,
				"Name\tSample\tData type\tFiles\n"+
					tt.expName+"\ts1\tdna\ta.fq\n")
			_, err := exps.Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadAcceptsDottedNames(t *testing.T) {
	path := writeManifest(t,
		"Name\tSample\tData type\tFiles\n"+
			"mg.one_2\ts1\tdna\ta.fq\n")
	_, err := exps.Load(path)
	assert.NoError(t, err)
}

func TestLoadRejectsUnknownDataType(t *testing.T) {
	path := writeManifest(t,
		"Name\tSample\tData type\tFiles\n"+
			"mg1\ts1\tpeptide\ta.fq\n")
	_, err := exps.Load(path)
	assert.Error(t, err)
}

func TestLoadMissingColumn(t *testing.T) {
	path := writeManifest(t, "Name\tSample\tFiles\nmg1\ts1\ta.fq\n")
	_, err := exps.Load(path)
	assert.Error(t, err)
}
