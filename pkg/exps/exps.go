// Package exps loads and validates the experiment manifest consumed by
// the reporting engine. The manifest is a tab-separated table with one
// row per experiment and the columns Name, Sample, Data type and Files.
// Data types are 'dna', 'mrna' and 'protein'; every other value is
// rejected. Experiment names become column names of quantification
// tables and later feed R-based differential analysis, so they must be
// valid R identifiers.
package exps

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/raseique/MOSCA/pkg/table"
)

// Data type values accepted in the manifest.
const (
	DNA     = "dna"
	RNA     = "mrna"
	Protein = "protein"
)

// Experiment is one row of the manifest.
type Experiment struct {
	// Name identifies the experiment/replicate. Unique across the run.
	Name string
	// Sample groups experiments that share assembly and annotation.
	Sample string
	// DataType is one of 'dna', 'mrna', 'protein'.
	DataType string
	// Files points at the raw input; paired reads are comma-separated.
	Files string
}

// Experiments is the validated manifest in input order.
type Experiments struct {
	rows []Experiment
}

// namePattern accepts word characters and dots; validName additionally
// rejects names starting with a digit or with a dot followed by a
// digit, which R would read as numbers.
var namePattern = regexp.MustCompile(`^[\w.]+$`)

func validName(s string) bool {
	if !namePattern.MatchString(s) {
		return false
	}
	if s[0] >= '0' && s[0] <= '9' {
		return false
	}
	if len(s) > 1 && s[0] == '.' && s[1] >= '0' && s[1] <= '9' {
		return false
	}
	return true
}

// rReservedWords are identifiers that cannot be used as column names
// in downstream R-based differential analysis.
var rReservedWords = map[string]struct{}{
	"if": {}, "else": {}, "repeat": {}, "while": {}, "function": {},
	"for": {}, "in": {}, "next": {}, "break": {}, "TRUE": {}, "FALSE": {},
	"NULL": {}, "Inf": {}, "NaN": {}, "NA": {}, "NA_integer_": {},
	"NA_real_": {}, "NA_complex_": {}, "NA_character_": {},
}

// Load reads and validates the manifest file.
func Load(path string) (*Experiments, error) {
	tbl, err := table.ReadFile(path, table.ReadOpts{Header: true})
	if err != nil {
		return nil, readError(path, err)
	}
	return fromTable(tbl, path)
}

func fromTable(tbl *table.Table, path string) (*Experiments, error) {
	for _, col := range []string{"Name", "Sample", "Data type", "Files"} {
		if !tbl.HasColumn(col) {
			return nil, columnError(path, col)
		}
	}

	res := &Experiments{rows: make([]Experiment, 0, tbl.NRows())}
	for i := 0; i < tbl.NRows(); i++ {
		e := Experiment{
			Name:     strings.TrimSpace(tbl.Cell(i, "Name")),
			Sample:   strings.TrimSpace(tbl.Cell(i, "Sample")),
			DataType: strings.ToLower(strings.TrimSpace(tbl.Cell(i, "Data type"))),
			Files:    strings.TrimSpace(tbl.Cell(i, "Files")),
		}
		if e.Name == "" {
			e.Name = deriveName(e.Files, e.DataType)
		}
		res.rows = append(res.rows, e)
	}

	if err := res.validate(); err != nil {
		return nil, err
	}
	return res, nil
}

// deriveName builds an experiment name from the Files field when the
// manifest leaves Name empty. Protein rows point at a spectra folder,
// paired-end reads share a _R prefix, and single files lose their
// fasta/fastq extension.
func deriveName(files, dataType string) string {
	filename := filepath.Base(files)
	if dataType == Protein {
		return filename
	}
	if strings.Contains(files, ",") {
		first := strings.Split(filename, ",")[0]
		return strings.Split(first, "_R")[0]
	}
	if i := strings.Index(filename, ".fa"); i >= 0 {
		return filename[:i]
	}
	return filename
}

func (e *Experiments) validate() error {
	seen := make(map[string]int, len(e.rows))
	var duplicated []string
	for _, row := range e.rows {
		if row.Name == "" {
			return nameError(row.Name, "empty name and no Files to derive one from")
		}
		if _, ok := rReservedWords[row.Name]; ok {
			return nameError(row.Name, "reserved R word")
		}
		if !validName(row.Name) {
			return nameError(
				row.Name,
				"starts with a number or has a special character; "+
					"use only letters, numbers, dots (.) and underscores (_)")
		}
		switch row.DataType {
		case DNA, RNA, Protein:
		default:
			return dataTypeError(row.Name, row.DataType)
		}
		seen[row.Name]++
		if seen[row.Name] == 2 {
			duplicated = append(duplicated, row.Name)
		}
	}
	if len(duplicated) > 0 {
		return duplicateNamesError(duplicated)
	}
	return nil
}

// Samples returns the distinct sample names in first-appearance order.
func (e *Experiments) Samples() []string {
	seen := make(map[string]struct{})
	var res []string
	for _, row := range e.rows {
		if _, ok := seen[row.Sample]; ok {
			continue
		}
		seen[row.Sample] = struct{}{}
		res = append(res, row.Sample)
	}
	return res
}

// Names returns, in manifest order, the experiment names of the given
// sample and data type.
func (e *Experiments) Names(sample, dataType string) []string {
	var res []string
	for _, row := range e.rows {
		if row.Sample == sample && row.DataType == dataType {
			res = append(res, row.Name)
		}
	}
	return res
}

// ForSample returns the manifest rows of one sample in input order.
func (e *Experiments) ForSample(sample string) []Experiment {
	var res []Experiment
	for _, row := range e.rows {
		if row.Sample == sample {
			res = append(res, row)
		}
	}
	return res
}

// All returns every manifest row in input order.
func (e *Experiments) All() []Experiment {
	res := make([]Experiment, len(e.rows))
	copy(res, e.rows)
	return res
}

// HasDataType reports whether any row of the run uses the data type.
func (e *Experiments) HasDataType(dataType string) bool {
	for _, row := range e.rows {
		if row.DataType == dataType {
			return true
		}
	}
	return false
}
