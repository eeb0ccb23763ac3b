// Package iobridge resolves the identifiers that link gene-calling
// output to external databases. Gene callers name features with their
// own IDs; annotation and peptide search tools answer with database
// accessions. The bridge walks BLAST-style alignment tables to map one
// space onto the other, and assembles spectral-count tables whose rows
// are keyed by the bridged accessions.
package iobridge

import (
	"strings"

	"github.com/raseique/MOSCA/pkg/table"
)

// BlastColumns is the column layout of tabular BLAST-style output
// (outfmt 6), as written by DIAMOND and friends.
var BlastColumns = []string{
	"qseqid", "sseqid", "pident", "length", "mismatch", "gapopen",
	"qstart", "qend", "sstart", "send", "evalue", "bitscore",
}

// noHit marks alignment rows without a valid match.
const noHit = "*"

// ParseBlast reads a headerless tabular alignment file.
func ParseBlast(path string) (*table.Table, error) {
	tbl, err := table.ReadFile(path, table.ReadOpts{Names: BlastColumns})
	if err != nil {
		return nil, alignmentError(path, err)
	}
	return tbl, nil
}

// Accession extracts the canonical accession from a subject ID.
// Subject IDs may be compound and pipe-delimited; the last segment is
// the accession.
func Accession(sseqid string) string {
	if i := strings.LastIndexByte(sseqid, '|'); i >= 0 {
		return sseqid[i+1:]
	}
	return sseqid
}

// Resolver maps native feature IDs to external accessions using an
// alignment table.
type Resolver struct {
	byQuery map[string]string
}

// NewResolver builds a Resolver from an alignment table. Rows whose
// subject is marked as a no-hit are skipped; when a query has several
// hits, the first one in input order wins.
func NewResolver(alignment *table.Table) (*Resolver, error) {
	qs, err := alignment.ColumnValues("qseqid")
	if err != nil {
		return nil, err
	}
	ss, err := alignment.ColumnValues("sseqid")
	if err != nil {
		return nil, err
	}

	res := &Resolver{byQuery: make(map[string]string, len(qs))}
	for i, q := range qs {
		if ss[i] == noHit {
			continue
		}
		if _, ok := res.byQuery[q]; ok {
			continue
		}
		res.byQuery[q] = Accession(ss[i])
	}
	return res, nil
}

// Resolve returns the accession of a native ID. The second value is
// false when no alignment passed validity checks for the feature.
func (r *Resolver) Resolve(nativeID string) (string, bool) {
	acc, ok := r.byQuery[nativeID]
	return acc, ok
}
