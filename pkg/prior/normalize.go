// Package prior holds the evidence-fusion core: threshold and ground-truth
// normalization of the motif matrix, coexpression projection, and the final
// convex blend. Every stage takes ownership of its input matrix and returns
// it transformed.
package prior

import (
	"github.com/yumyai/priornet/pkg/dataset"
	"github.com/yumyai/priornet/pkg/params"
	"gonum.org/v1/gonum/mat"
)

// Threshold remaps motif p-values to binary binding calls when the flag
// combination selects the thresholding branch; otherwise the raw weights
// pass through. Cells at exactly 0 (no edge) or >= 1 (pre-existing
// full-confidence edges) are never touched.
func Threshold(regnet *mat.Dense, p params.Params) *mat.Dense {
	if !p.UseThreshold() {
		return regnet
	}
	r, c := regnet.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := regnet.At(i, j)
			switch {
			case v > 0 && v <= p.Thresh:
				regnet.Set(i, j, 1)
			case v > p.Thresh && v < 1:
				regnet.Set(i, j, 0)
			}
		}
	}
	return regnet
}

// OverlayChIP replaces rows of the matrix with experimentally validated
// targets. Mode 1 zeroes each covered TF row and marks its targets 1; mode 2
// fills the baseline row with -1 instead, so "assayed but not bound" stays
// distinct from "unknown". Mode 0 is a no-op. TFs in the table but not in
// the TF set are skipped, as are targets outside the gene set.
func OverlayChIP(regnet *mat.Dense, table []dataset.ChIPEntry, tfs, genes []string, mode int) *mat.Dense {
	if mode == 0 {
		return regnet
	}

	tfIdx := indexOf(tfs)
	geneIdx := indexOf(genes)

	baseline := 0.0
	if mode == 2 {
		baseline = -1.0
	}

	for _, entry := range table {
		i, ok := tfIdx[entry.TF]
		if !ok {
			continue
		}
		for j := range genes {
			regnet.Set(i, j, baseline)
		}
		for _, target := range entry.Targets {
			if j, ok := geneIdx[target]; ok {
				regnet.Set(i, j, 1)
			}
		}
	}
	return regnet
}

func indexOf(names []string) map[string]int {
	idx := make(map[string]int, len(names))
	for i, n := range names {
		if _, ok := idx[n]; !ok {
			idx[n] = i
		}
	}
	return idx
}
