package prior

import (
	"math"

	"github.com/yumyai/priornet/pkg/coexpr"
	"gonum.org/v1/gonum/mat"
)

// CoexEvidence projects the gene x gene coexpression matrix onto the TF rows
// and normalizes it into fusable evidence:
//
//  1. optionally zero the coexpression diagonal (self-coexpression must not
//     leak into a TF's own row)
//  2. copy the coexpression row of every TF whose id names a gene; TFs with
//     no matching gene keep an all-zero row
//  3. take absolute values (only correlation strength matters)
//  4. impute every exact-zero cell with the global mean of the matrix
//  5. zero out cells below cutOff
//
// An entirely zero matrix has no defined mean; it is treated as 0 and the
// matrix passes through unchanged. Takes ownership of coreg.
func CoexEvidence(coreg *mat.Dense, tfs, genes []string, zeroDiagonal bool, cutOff float64) *mat.Dense {

	if zeroDiagonal {
		coexpr.ZeroDiagonal(coreg)
	}

	geneIdx := indexOf(genes)

	evidence := mat.NewDense(len(tfs), len(genes), nil)
	for i, tf := range tfs {
		g, ok := geneIdx[tf]
		if !ok {
			continue
		}
		for j := range genes {
			evidence.Set(i, j, math.Abs(coreg.At(g, j)))
		}
	}

	// Global mean over every cell, zeros included; all cells are >= 0 here
	// so a zero sum means an all-zero matrix.
	r, c := evidence.Dims()
	sum := mat.Sum(evidence)
	mean := 0.0
	if sum != 0 {
		mean = sum / float64(r*c)
	}

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := evidence.At(i, j)
			if v == 0 {
				v = mean
			}
			if v < cutOff {
				v = 0
			}
			evidence.Set(i, j, v)
		}
	}

	return evidence
}

// Fuse blends coexpression evidence into the regulatory matrix as a convex
// combination: weight 0 keeps the motif-derived matrix untouched, weight 1
// replaces it outright.
func Fuse(regnet, evidence *mat.Dense, weight float64) *mat.Dense {
	r, c := regnet.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			regnet.Set(i, j, (1-weight)*regnet.At(i, j)+weight*evidence.At(i, j))
		}
	}
	return regnet
}
