package ioemit

import (
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/raseique/MOSCA/pkg/table"
)

func testTable(rows int) *table.Table {
	res := table.New("qseqid", "mg1")
	for i := 0; i < rows; i++ {
		res.AppendRow("gene"+strconv.Itoa(i), strconv.Itoa(i))
	}
	return res
}

func TestSingleSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	wb := NewWorkbook(100)
	require.NoError(t, wb.AddTable("s1", testTable(3)))
	require.NoError(t, wb.Close(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"s1"}, f.GetSheetList())
	rows, err := f.GetRows("s1")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"qseqid", "mg1"}, rows[0])
	assert.Equal(t, []string{"gene0", "0"}, rows[1])
	assert.Equal(t, []string{"gene2", "2"}, rows[3])
}

func TestSheetSplitting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	wb := NewWorkbook(10)
	require.NoError(t, wb.AddTable("s1", testTable(25)))
	require.NoError(t, wb.Close(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t,
		[]string{"s1 (1)", "s1 (2)", "s1 (3)"}, f.GetSheetList())

	// chunks keep the original row order and sizes 10, 10, 5
	rows, err := f.GetRows("s1 (1)")
	require.NoError(t, err)
	require.Len(t, rows, 11)
	assert.Equal(t, "gene0", rows[1][0])
	assert.Equal(t, "gene9", rows[10][0])

	rows, err = f.GetRows("s1 (2)")
	require.NoError(t, err)
	require.Len(t, rows, 11)
	assert.Equal(t, "gene10", rows[1][0])

	rows, err = f.GetRows("s1 (3)")
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "gene24", rows[5][0])
}

func TestExactThresholdNotSplit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	wb := NewWorkbook(10)
	require.NoError(t, wb.AddTable("s1", testTable(10)))
	require.NoError(t, wb.Close(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"s1"}, f.GetSheetList())
}

func TestSheetNameCollision(t *testing.T) {
	wb := NewWorkbook(100)
	require.NoError(t, wb.AddTable("s1", testTable(1)))
	err := wb.AddTable("s1", testTable(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate sheet name")
}

func TestLongNamesTruncatedAndCollide(t *testing.T) {
	long := strings.Repeat("x", 40)
	wb := NewWorkbook(100)
	require.NoError(t, wb.AddTable(long, testTable(1)))
	// a second name sharing the first 31 characters collides
	err := wb.AddTable(long+"y", testTable(1))
	require.Error(t, err)
}

func TestMultipleSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	wb := NewWorkbook(100)
	require.NoError(t, wb.AddTable("s1", testTable(2)))
	require.NoError(t, wb.AddTable("s2", testTable(2)))
	require.NoError(t, wb.Close(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"s1", "s2"}, f.GetSheetList())
}
