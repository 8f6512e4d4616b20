// Package coexpr computes gene-gene coexpression (Pearson correlation of
// expression profiles across conditions).
package coexpr

import (
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Correlate returns the symmetric genes x genes Pearson correlation matrix
// of the columns of data (conditions x genes). A constant gene correlates 0
// with everything (including itself). NaN in the input propagates.
func Correlate(data *mat.Dense) *mat.Dense {

	conds, genes := data.Dims()

	// Center each profile once, keep its norm for the denominator.
	centered := make([][]float64, genes)
	norms := make([]float64, genes)
	for j := 0; j < genes; j++ {
		col := mat.Col(nil, j, data)
		mean := floats.Sum(col) / float64(conds)
		for k := range col {
			col[k] -= mean
		}
		centered[j] = col
		norms[j] = floats.Norm(col, 2)
	}

	coreg := mat.NewDense(genes, genes, nil)

	// Row blocks touch disjoint cells, so the workers never overlap.
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < genes; i++ {
		i := i
		g.Go(func() error {
			for j := i; j < genes; j++ {
				var r float64
				if norms[i] != 0 && norms[j] != 0 {
					r = floats.Dot(centered[i], centered[j]) / (norms[i] * norms[j])
				}
				coreg.Set(i, j, r)
				coreg.Set(j, i, r)
			}
			return nil
		})
	}
	g.Wait() // workers cannot fail

	return coreg
}

// ZeroDiagonal clears self-coexpression in place and returns the matrix.
func ZeroDiagonal(m *mat.Dense) *mat.Dense {
	n, _ := m.Dims()
	for i := 0; i < n; i++ {
		m.Set(i, i, 0)
	}
	return m
}
