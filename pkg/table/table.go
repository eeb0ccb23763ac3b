// Package table implements the tabular engine behind MOSCA's report
// reconciliation. Tables keep their columns in declared order and hold
// values as strings, the way they arrive from the tab-separated outputs
// of upstream tools. All merge operations are driven by the left table:
// joins never grow the left side's row set, and rows on the right that
// reference unknown keys are dropped.
//
// Columns carry the name of the tool that produced them. Two tools may
// emit a field with the same name but different semantics; such columns
// stay distinct internally and are disambiguated with a "name (tool)"
// suffix only when headers are flattened for output.
package table

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
)

// Column is a named table column together with the tool that produced
// it. Source is empty for native columns such as join keys.
type Column struct {
	Name   string
	Source string
}

// Table is an ordered collection of columns and string-valued rows.
type Table struct {
	cols []Column
	rows [][]string
}

// New creates an empty table with the given native column names.
func New(names ...string) *Table {
	cols := make([]Column, len(names))
	for i, n := range names {
		cols[i] = Column{Name: n}
	}
	return &Table{cols: cols}
}

// ReadOpts controls how a tab-separated file is interpreted.
type ReadOpts struct {
	// Header is true when the first row names the columns.
	Header bool
	// Names overrides column names; required when Header is false.
	Names []string
	// SkipRows drops this many leading rows before reading data.
	// Rows skipped are counted after the header, if any.
	SkipRows int
	// Source labels every read column with the producing tool.
	Source string
}

// Read parses tab-separated content into a Table.
func Read(r io.Reader, opts ReadOpts) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	var names []string
	if opts.Header {
		rec, err := cr.Read()
		if err == io.EOF {
			if len(opts.Names) == 0 {
				return nil, emptyInputError()
			}
			rec = nil
		} else if err != nil {
			return nil, parseError(err)
		}
		names = rec
	}
	if len(opts.Names) > 0 {
		names = opts.Names
	}
	if len(names) == 0 {
		return nil, emptyInputError()
	}

	t := &Table{cols: make([]Column, len(names))}
	for i, n := range names {
		t.cols[i] = Column{Name: n, Source: opts.Source}
	}

	skip := opts.SkipRows
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseError(err)
		}
		if skip > 0 {
			skip--
			continue
		}
		t.rows = append(t.rows, normalize(rec, len(t.cols)))
	}
	return t, nil
}

// ReadFile parses a tab-separated file into a Table.
func ReadFile(path string, opts ReadOpts) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, readFileError(path, err)
	}
	defer f.Close()

	t, err := Read(f, opts)
	if err != nil {
		return nil, readFileError(path, err)
	}
	return t, nil
}

func normalize(rec []string, width int) []string {
	if len(rec) == width {
		return rec
	}
	row := make([]string, width)
	copy(row, rec)
	return row
}

// NRows returns the number of data rows.
func (t *Table) NRows() int { return len(t.rows) }

// NCols returns the number of columns.
func (t *Table) NCols() int { return len(t.cols) }

// Columns returns a copy of the column descriptors in declared order.
func (t *Table) Columns() []Column {
	res := make([]Column, len(t.cols))
	copy(res, t.cols)
	return res
}

// Headers flattens column descriptors to output names. A column name
// shared by more than one column is suffixed with its source tool, so
// two annotators emitting the same field yield two distinct headers.
func (t *Table) Headers() []string {
	count := make(map[string]int, len(t.cols))
	for _, c := range t.cols {
		count[c.Name]++
	}
	res := make([]string, len(t.cols))
	for i, c := range t.cols {
		if count[c.Name] > 1 && c.Source != "" {
			res[i] = c.Name + " (" + c.Source + ")"
		} else {
			res[i] = c.Name
		}
	}
	return res
}

// colIndex finds a column by bare name. Native columns win over tagged
// ones; otherwise the first match in declared order is used.
func (t *Table) colIndex(name string) (int, bool) {
	found := -1
	for i, c := range t.cols {
		if c.Name != name {
			continue
		}
		if c.Source == "" {
			return i, true
		}
		if found < 0 {
			found = i
		}
	}
	if found >= 0 {
		return found, true
	}
	return 0, false
}

// HasColumn reports whether a column with the given bare name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.colIndex(name)
	return ok
}

// AppendRow adds a data row. Short rows are padded with empty strings.
func (t *Table) AppendRow(vals ...string) {
	t.rows = append(t.rows, normalize(vals, len(t.cols)))
}

// AddColumn appends a native column whose value is computed per row.
func (t *Table) AddColumn(name string, fn func(row []string) string) {
	t.cols = append(t.cols, Column{Name: name})
	for i, row := range t.rows {
		t.rows[i] = append(row, fn(row))
	}
}

// Row returns the i-th data row. The slice must not be modified.
func (t *Table) Row(i int) []string { return t.rows[i] }

// Cell returns the value of the named column in row i, or the empty
// string when the column does not exist.
func (t *Table) Cell(i int, name string) string {
	idx, ok := t.colIndex(name)
	if !ok {
		return ""
	}
	return t.rows[i][idx]
}

// RowValue returns the named column's value inside a row slice
// obtained from this table, or the empty string when the column does
// not exist.
func (t *Table) RowValue(row []string, name string) string {
	idx, ok := t.colIndex(name)
	if !ok {
		return ""
	}
	return row[idx]
}

// SetRowValue sets the named column's value inside a row slice
// obtained from this table. Unknown columns are ignored.
func (t *Table) SetRowValue(row []string, name, val string) {
	if idx, ok := t.colIndex(name); ok {
		row[idx] = val
	}
}

// TransformColumn rewrites every value of the named column through fn.
func (t *Table) TransformColumn(name string, fn func(string) string) error {
	idx, ok := t.colIndex(name)
	if !ok {
		return missingColumnError(name)
	}
	for _, row := range t.rows {
		row[idx] = fn(row[idx])
	}
	return nil
}

// ColumnValues returns all values of the named column in row order.
func (t *Table) ColumnValues(name string) ([]string, error) {
	idx, ok := t.colIndex(name)
	if !ok {
		return nil, missingColumnError(name)
	}
	res := make([]string, len(t.rows))
	for i, row := range t.rows {
		res[i] = row[idx]
	}
	return res, nil
}

// Rename changes the bare name of a column.
func (t *Table) Rename(old, new string) error {
	idx, ok := t.colIndex(old)
	if !ok {
		return missingColumnError(old)
	}
	t.cols[idx].Name = new
	return nil
}

// FilterRows keeps only rows for which keep returns true, preserving
// order.
func (t *Table) FilterRows(keep func(row []string) bool) {
	res := t.rows[:0]
	for _, row := range t.rows {
		if keep(row) {
			res = append(res, row)
		}
	}
	t.rows = res
}

// DedupFirst keeps, for every distinct value of the key column, only
// the first row in input order. Upstream tools may emit repeated
// best-hit rows for the same query; the tie-break is stable and
// explicit: original row order, take first.
func (t *Table) DedupFirst(key string) error {
	idx, ok := t.colIndex(key)
	if !ok {
		return missingColumnError(key)
	}
	seen := make(map[string]struct{}, len(t.rows))
	res := t.rows[:0]
	for _, row := range t.rows {
		if _, dup := seen[row[idx]]; dup {
			continue
		}
		seen[row[idx]] = struct{}{}
		res = append(res, row)
	}
	t.rows = res
	return nil
}

// Select projects the table onto the given bare column names, in the
// given order.
func (t *Table) Select(names ...string) (*Table, error) {
	idxs := make([]int, len(names))
	cols := make([]Column, len(names))
	for i, n := range names {
		idx, ok := t.colIndex(n)
		if !ok {
			return nil, missingColumnError(n)
		}
		idxs[i] = idx
		cols[i] = t.cols[idx]
	}
	res := &Table{cols: cols, rows: make([][]string, len(t.rows))}
	for i, row := range t.rows {
		vals := make([]string, len(idxs))
		for j, idx := range idxs {
			vals[j] = row[idx]
		}
		res.rows[i] = vals
	}
	return res, nil
}

// LeftJoin merges the right table into t on the named key. Every row
// of t is kept exactly once; right rows with keys absent from t are
// dropped. When several right rows share a key the first one wins.
// The right table's key column is not duplicated in the result.
func (t *Table) LeftJoin(right *Table, on string) (*Table, error) {
	li, ok := t.colIndex(on)
	if !ok {
		return nil, joinKeyError(on, "left")
	}
	ri, ok := right.colIndex(on)
	if !ok {
		return nil, joinKeyError(on, "right")
	}

	lookup := make(map[string][]string, right.NRows())
	for _, row := range right.rows {
		if _, dup := lookup[row[ri]]; !dup {
			lookup[row[ri]] = row
		}
	}

	res := &Table{cols: make([]Column, 0, len(t.cols)+len(right.cols)-1)}
	res.cols = append(res.cols, t.cols...)
	for i, c := range right.cols {
		if i == ri {
			continue
		}
		res.cols = append(res.cols, c)
	}

	res.rows = make([][]string, len(t.rows))
	for i, lrow := range t.rows {
		row := make([]string, 0, len(res.cols))
		row = append(row, lrow...)
		rrow := lookup[lrow[li]]
		for j := range right.cols {
			if j == ri {
				continue
			}
			if rrow == nil {
				row = append(row, "")
			} else {
				row = append(row, rrow[j])
			}
		}
		res.rows[i] = row
	}
	return res, nil
}

// OuterJoin merges two tables on the named key keeping the union of
// key values: all rows of t in order, then right rows with unseen keys
// in their input order. Used when folding per-experiment readcounts
// into one sample-level table.
func (t *Table) OuterJoin(right *Table, on string) (*Table, error) {
	res, err := t.LeftJoin(right, on)
	if err != nil {
		return nil, err
	}

	li, _ := t.colIndex(on)
	ri, _ := right.colIndex(on)
	oi, _ := res.colIndex(on)

	seen := make(map[string]struct{}, len(t.rows))
	for _, row := range t.rows {
		seen[row[li]] = struct{}{}
	}
	for _, rrow := range right.rows {
		if _, ok := seen[rrow[ri]]; ok {
			continue
		}
		seen[rrow[ri]] = struct{}{}
		row := make([]string, len(res.cols))
		row[oi] = rrow[ri]
		k := len(t.cols)
		for j := range right.cols {
			if j == ri {
				continue
			}
			row[k] = rrow[j]
			k++
		}
		res.rows = append(res.rows, row)
	}
	return res, nil
}

// FillZeroInt replaces missing values of the named columns with zero
// and coerces the rest to non-negative integers. Values pass through a
// float parse first because upstream normalization may write counts
// like "2.0" that a direct integer parse would reject; fractional
// values are truncated.
func (t *Table) FillZeroInt(names []string) error {
	for _, name := range names {
		idx, ok := t.colIndex(name)
		if !ok {
			return missingColumnError(name)
		}
		for _, row := range t.rows {
			v := row[idx]
			if v == "" {
				row[idx] = "0"
				continue
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return castError(name, v, err)
			}
			row[idx] = strconv.FormatInt(int64(f), 10)
		}
	}
	return nil
}

// GroupSum groups rows by the key column and sums every other column
// as a floating point number, producing one row per distinct key in
// first-appearance order. Missing values count as zero.
func (t *Table) GroupSum(key string) (*Table, error) {
	ki, ok := t.colIndex(key)
	if !ok {
		return nil, missingColumnError(key)
	}

	res := &Table{cols: make([]Column, len(t.cols))}
	copy(res.cols, t.cols)

	sums := make(map[string][]float64, len(t.rows))
	var order []string
	for _, row := range t.rows {
		k := row[ki]
		acc, ok := sums[k]
		if !ok {
			acc = make([]float64, len(t.cols))
			sums[k] = acc
			order = append(order, k)
		}
		for j, v := range row {
			if j == ki || v == "" {
				continue
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, castError(t.cols[j].Name, v, err)
			}
			acc[j] += f
		}
	}

	res.rows = make([][]string, len(order))
	for i, k := range order {
		row := make([]string, len(t.cols))
		row[ki] = k
		for j := range t.cols {
			if j == ki {
				continue
			}
			row[j] = formatNum(sums[k][j])
		}
		res.rows[i] = row
	}
	return res, nil
}

// DropExactDuplicates removes rows identical to an earlier row and
// returns how many were dropped.
func (t *Table) DropExactDuplicates() int {
	seen := make(map[string]struct{}, len(t.rows))
	res := t.rows[:0]
	dropped := 0
	for _, row := range t.rows {
		k := rowKey(row)
		if _, dup := seen[k]; dup {
			dropped++
			continue
		}
		seen[k] = struct{}{}
		res = append(res, row)
	}
	t.rows = res
	return dropped
}

// DropMissing removes rows with an empty value in any of the named
// columns and returns how many were dropped.
func (t *Table) DropMissing(names []string) (int, error) {
	idxs := make([]int, len(names))
	for i, n := range names {
		idx, ok := t.colIndex(n)
		if !ok {
			return 0, missingColumnError(n)
		}
		idxs[i] = idx
	}
	res := t.rows[:0]
	dropped := 0
	for _, row := range t.rows {
		miss := false
		for _, idx := range idxs {
			if row[idx] == "" {
				miss = true
				break
			}
		}
		if miss {
			dropped++
			continue
		}
		res = append(res, row)
	}
	t.rows = res
	return dropped, nil
}

// Slice returns a shallow view of rows [from, to).
func (t *Table) Slice(from, to int) *Table {
	return &Table{cols: t.cols, rows: t.rows[from:to]}
}

// Write writes the table as tab-separated values with a flattened
// header row.
func (t *Table) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write(t.Headers()); err != nil {
		return err
	}
	for _, row := range t.rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the table as a tab-separated file.
func (t *Table) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return writeFileError(path, err)
	}
	defer f.Close()

	if err = t.Write(f); err != nil {
		return writeFileError(path, err)
	}
	return nil
}

func rowKey(row []string) string {
	n := 0
	for _, v := range row {
		n += len(v) + 1
	}
	b := make([]byte, 0, n)
	for _, v := range row {
		b = append(b, v...)
		b = append(b, '\x1f')
	}
	return string(b)
}

func formatNum(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
