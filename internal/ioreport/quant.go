package ioreport

import (
	"context"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/raseique/MOSCA/pkg/exps"
	"github.com/raseique/MOSCA/pkg/table"
)

// quantPart is one data type's quantification table for a sample.
// A nil table means the manifest declares no experiments of the type.
type quantPart struct {
	tbl   *table.Table
	path  string
	names []string
}

// quantTables holds a sample's quantification tables in join order.
type quantTables struct {
	mg, mt, mp quantPart
}

func (q *quantTables) parts() []quantPart {
	return []quantPart{q.mg, q.mt, q.mp}
}

// readQuantification loads the sample's DNA, RNA and protein
// quantification tables. The reads run concurrently under the
// configured worker limit and join at a barrier; a failed read aborts
// the whole sample. Data types with no experiments in the manifest are
// skipped, not zero-filled.
func (r *reporter) readQuantification(
	ctx context.Context, sample string,
) (*quantTables, error) {
	mgNames := r.manifest.Names(sample, exps.DNA)
	mtNames := r.manifest.Names(sample, exps.RNA)
	mpNames := r.manifest.Names(sample, exps.Protein)

	var res quantTables
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.JobsNumber)

	if len(mgNames) > 0 {
		g.Go(func() error {
			part, err := r.readDNACounts(sample, mgNames)
			if err != nil {
				return err
			}
			res.mg = part
			return nil
		})
	}
	if len(mtNames) > 0 {
		g.Go(func() error {
			part, err := r.readRNACounts(sample, mtNames)
			if err != nil {
				return err
			}
			res.mt = part
			return nil
		})
	}
	if len(mpNames) > 0 {
		g.Go(func() error {
			part, err := r.readSpectraCounts(sample, mpNames)
			if err != nil {
				return err
			}
			res.mp = part
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &res, nil
}

// readDNACounts reads metagenomics counts. With assembly the table is
// keyed by contig and its IDs are reduced to the ordinal shared with
// the feature table; without assembly it is keyed by gene ID. The
// first row is the upstream writer's header and is skipped because the
// experiment names of the manifest replace it.
func (r *reporter) readDNACounts(
	sample string, names []string,
) (quantPart, error) {
	var path string
	var cols []string
	if r.cfg.DidAssembly {
		path = filepath.Join(
			r.cfg.OutputDir, "Quantification", sample+"_mg_norm.tsv")
		cols = append([]string{"Contig"}, names...)
	} else {
		path = filepath.Join(
			r.cfg.OutputDir, "Quantification", sample+"_mg.readcounts")
		cols = append([]string{"qseqid"}, names...)
	}

	tbl, err := table.ReadFile(
		path, table.ReadOpts{Names: cols, SkipRows: 1})
	if err != nil {
		return quantPart{}, quantificationError(sample, path, err)
	}
	if r.cfg.DidAssembly {
		if err = tbl.TransformColumn("Contig", contigOf); err != nil {
			return quantPart{}, quantificationError(sample, path, err)
		}
	}
	return quantPart{tbl: tbl, path: path, names: names}, nil
}

// readRNACounts reads metatranscriptomics counts, always keyed by gene
// ID. With assembly upstream wrote the normalized table, without it
// the raw readcounts; the layout is the same.
func (r *reporter) readRNACounts(
	sample string, names []string,
) (quantPart, error) {
	filename := sample + "_mt_norm.tsv"
	if !r.cfg.DidAssembly {
		filename = sample + "_mt.readcounts"
	}
	path := filepath.Join(r.cfg.OutputDir, "Quantification", filename)
	cols := append([]string{"qseqid"}, names...)
	tbl, err := table.ReadFile(path, table.ReadOpts{Names: cols})
	if err != nil {
		return quantPart{}, quantificationError(sample, path, err)
	}
	return quantPart{tbl: tbl, path: path, names: names}, nil
}

// readSpectraCounts reads the spectral-count table assembled by the
// metaproteomics step and rekeys it from protein accessions to the
// gene IDs of the feature table.
func (r *reporter) readSpectraCounts(
	sample string, names []string,
) (quantPart, error) {
	path := filepath.Join(
		r.cfg.OutputDir, "Metaproteomics", sample+"_mp.spectracounts")
	tbl, err := table.ReadFile(path, table.ReadOpts{Header: true})
	if err != nil {
		return quantPart{}, quantificationError(sample, path, err)
	}
	if err = tbl.Rename("Main Accession", "qseqid"); err != nil {
		return quantPart{}, quantificationError(sample, path, err)
	}
	return quantPart{tbl: tbl, path: path, names: names}, nil
}

// joinQuantification merges the quantification tables onto the feature
// table. The join prefers the Contig key when both sides carry it, so
// contig-level counts fan out to every gene of the contig; otherwise
// gene IDs are matched directly. Features without counts get zeros in
// every experiment column of the present data types.
func (r *reporter) joinQuantification(
	sample string, features *table.Table, quant *quantTables,
) (*table.Table, error) {
	res := features
	var err error
	var fill []string
	for _, part := range quant.parts() {
		if part.tbl == nil {
			continue
		}
		key := "qseqid"
		if part.tbl.HasColumn("Contig") && res.HasColumn("Contig") {
			key = "Contig"
		}
		if res, err = res.LeftJoin(part.tbl, key); err != nil {
			return nil, quantificationError(sample, part.path, err)
		}
		fill = append(fill, part.names...)
	}
	if err = res.FillZeroInt(fill); err != nil {
		return nil, err
	}
	return res, nil
}
