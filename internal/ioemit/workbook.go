// Package ioemit writes the consolidated XLSX workbook, one sheet per
// sample. Sheets are streamed so million-row reports do not live in
// memory twice.
package ioemit

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/raseique/MOSCA/pkg/report"
	"github.com/raseique/MOSCA/pkg/table"
)

// maxSheetName is the sheet name length the XLSX format allows.
const maxSheetName = 31

// defaultSheet is the sheet excelize seeds new files with.
const defaultSheet = "Sheet1"

// workbook implements the Emitter interface.
type workbook struct {
	f       *excelize.File
	maxRows int
	used    map[string]struct{}
}

// NewWorkbook creates an Emitter whose sheets hold at most maxRows
// data rows; larger tables are split into numbered chunks that keep
// the original row order.
func NewWorkbook(maxRows int) report.Emitter {
	return &workbook{
		f:       excelize.NewFile(),
		maxRows: maxRows,
		used:    make(map[string]struct{}),
	}
}

// AddTable appends a sample's table as one sheet, or as sheets named
// '<sample> (k)' when the table exceeds the row threshold.
func (w *workbook) AddTable(sample string, tbl *table.Table) error {
	n := tbl.NRows()
	if n <= w.maxRows {
		return w.addSheet(sample, tbl)
	}

	chunks := (n + w.maxRows - 1) / w.maxRows
	slog.Info("Splitting sample over several sheets",
		"sample", sample,
		"rows", n,
		"sheets", chunks,
	)
	for k := 0; k < chunks; k++ {
		from := k * w.maxRows
		to := from + w.maxRows
		if to > n {
			to = n
		}
		name := fmt.Sprintf("%s (%d)", sample, k+1)
		if err := w.addSheet(name, tbl.Slice(from, to)); err != nil {
			return err
		}
	}
	return nil
}

func (w *workbook) addSheet(name string, tbl *table.Table) error {
	name = truncateName(name)
	if _, ok := w.used[name]; ok {
		return sheetNameError(name)
	}
	w.used[name] = struct{}{}

	if _, err := w.f.NewSheet(name); err != nil {
		return workbookError("extend", err)
	}
	sw, err := w.f.NewStreamWriter(name)
	if err != nil {
		return workbookError("extend", err)
	}
	if err = writeRow(sw, 1, tbl.Headers()); err != nil {
		return workbookError("extend", err)
	}
	for i := 0; i < tbl.NRows(); i++ {
		if err = writeRow(sw, i+2, tbl.Row(i)); err != nil {
			return workbookError("extend", err)
		}
	}
	if err = sw.Flush(); err != nil {
		return workbookError("extend", err)
	}
	return nil
}

// Close drops the seed sheet and flushes the workbook to path.
func (w *workbook) Close(path string) error {
	if _, taken := w.used[defaultSheet]; !taken && len(w.used) > 0 {
		if err := w.f.DeleteSheet(defaultSheet); err != nil {
			return workbookError("finish", err)
		}
	}
	if err := w.f.SaveAs(path); err != nil {
		return workbookError("save", err)
	}
	if err := w.f.Close(); err != nil {
		return workbookError("close", err)
	}
	return nil
}

func writeRow(sw *excelize.StreamWriter, rowNum int, vals []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	row := make([]any, len(vals))
	for i, v := range vals {
		row[i] = v
	}
	return sw.SetRow(cell, row)
}

func truncateName(s string) string {
	runes := []rune(s)
	if len(runes) <= maxSheetName {
		return s
	}
	return string(runes[:maxSheetName])
}
