package iobridge

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/raseique/MOSCA/pkg/table"
)

// accessionCol is the key column of PeptideShaker protein reports.
const accessionCol = "Main Accession"

// psmCol holds spectral counts in PeptideShaker protein reports.
const psmCol = "#PSMs"

// JoinProteinReports outer-merges PeptideShaker protein reports into
// one table keyed by Main Accession, with one column per report named
// after the replicate. When names is nil the replicate name is derived
// from the report filename. Duplicate accessions within one report are
// summed before merging. Reports are visited in alphanumeric order
// so replicate columns come out in a stable order. A positive localFDR
// keeps only rows whose confidence exceeds 100-localFDR percent;
// withValidation keeps only rows PeptideShaker marked 'Confident'.
func JoinProteinReports(
	files, names []string, localFDR float64, withValidation bool,
) (*table.Table, error) {
	order := make([]int, len(files))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return alphanumLess(files[order[a]], files[order[b]])
	})

	res := table.New(accessionCol)
	for _, i := range order {
		name := replicateName(files[i])
		if names != nil {
			name = names[i]
		}
		data, err := table.ReadFile(files[i], table.ReadOpts{Header: true})
		if err != nil {
			return nil, spectraError(files[i], err)
		}
		if localFDR > 0 && data.HasColumn("Confidence [%]") {
			cutoff := 100 - localFDR
			data.FilterRows(func(row []string) bool {
				return confidenceAbove(data, row, cutoff)
			})
		}
		if withValidation && data.HasColumn("Validation") {
			data.FilterRows(func(row []string) bool {
				return data.RowValue(row, "Validation") == "Confident"
			})
		}
		if data.NRows() == 0 {
			slog.Warn("Protein report has no rows after filtering",
				"file", files[i])
			continue
		}

		part, err := data.Select(accessionCol, psmCol)
		if err != nil {
			return nil, spectraError(files[i], err)
		}
		if err = part.Rename(psmCol, name); err != nil {
			return nil, spectraError(files[i], err)
		}
		// a report can list the same accession twice; their counts
		// belong to one protein
		if part, err = part.GroupSum(accessionCol); err != nil {
			return nil, spectraError(files[i], err)
		}
		if res, err = res.OuterJoin(part, accessionCol); err != nil {
			return nil, spectraError(files[i], err)
		}
	}
	return res, nil
}

// SpectraCounts assembles a sample's spectral-count table. Each
// protein report contributes one column; when the search database was
// not built from UniProt sequences, Main Accession values are bridged
// to UniProt accessions through the alignment table at blastPath
// before counting. Counts of the same accession are summed, missing
// counts become zero, and the result is keyed by Main Accession for
// the quantification joiner. A positive localFDR filters report rows
// by confidence, see JoinProteinReports.
func SpectraCounts(
	files, names []string, blastPath string, uniprotIDs bool,
	localFDR float64,
) (*table.Table, error) {
	var resolver *Resolver
	if !uniprotIDs {
		// without the bridge the counts cannot be keyed, so a missing
		// alignment table is fatal for the sample
		alignment, err := ParseBlast(blastPath)
		if err != nil {
			return nil, err
		}
		if resolver, err = NewResolver(alignment); err != nil {
			return nil, err
		}
	}

	joined, err := JoinProteinReports(files, names, localFDR, false)
	if err != nil {
		return nil, err
	}

	if resolver != nil {
		unresolved := 0
		joined.FilterRows(func(row []string) bool {
			acc, ok := resolver.Resolve(joined.RowValue(row, accessionCol))
			if !ok {
				unresolved++
				return false
			}
			joined.SetRowValue(row, accessionCol, acc)
			return true
		})
		if unresolved > 0 {
			slog.Warn("Dropped spectral counts without an accession",
				"rows", unresolved)
		}
	}

	res, err := joined.GroupSum(accessionCol)
	if err != nil {
		return nil, err
	}
	if err = res.FillZeroInt(names); err != nil {
		return nil, err
	}
	return res, nil
}

func confidenceAbove(t *table.Table, row []string, cutoff float64) bool {
	v := t.RowValue(row, "Confidence [%]")
	if v == "" {
		return false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return false
	}
	return f > cutoff
}

// alphanumLess compares strings so embedded numbers sort numerically:
// report_2 comes before report_10.
func alphanumLess(a, b string) bool {
	for len(a) > 0 && len(b) > 0 {
		ad, an := leadingNumber(a)
		bd, bn := leadingNumber(b)
		if an >= 0 && bn >= 0 {
			if an != bn {
				return an < bn
			}
		} else {
			ca, cb := a[0], b[0]
			if ca != cb {
				return ca < cb
			}
			ad, bd = 1, 1
		}
		a, b = a[ad:], b[bd:]
	}
	return len(a) < len(b)
}

func leadingNumber(s string) (int, int64) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, -1
	}
	n, err := strconv.ParseInt(s[:i], 10, 64)
	if err != nil {
		return 0, -1
	}
	return i, n
}

// replicateName derives a replicate's column name from a protein
// report path when the manifest does not provide one. PeptideShaker
// names reports '<sample>_<name>_<n>_Default_Protein_Report.txt'.
func replicateName(path string) string {
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	parts := strings.Split(base, "_")
	if len(parts) > 1 {
		return parts[1]
	}
	return base
}
