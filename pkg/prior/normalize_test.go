package prior

import (
	"testing"

	"github.com/yumyai/priornet/pkg/dataset"
	"github.com/yumyai/priornet/pkg/params"
	"gonum.org/v1/gonum/mat"
)

func thresholdParams(thresh float64) params.Params {
	return params.Params{OldMotif: 0, IncCoverage: 1, QPval: 0, Thresh: thresh}
}

func TestThreshold(t *testing.T) {

	// 0 and >=1 are sentinels and pass through, (0,thresh] binds,
	// (thresh,1) does not.
	regnet := mat.NewDense(1, 5, []float64{0, 0.01, 0.05, 0.5, 1})

	Threshold(regnet, thresholdParams(0.05))

	want := []float64{0, 1, 1, 0, 1}
	for j, w := range want {
		if got := regnet.At(0, j); got != w {
			t.Errorf("cell %d = %v, want %v", j, got, w)
		}
	}
}

func TestThresholdIdempotent(t *testing.T) {

	regnet := mat.NewDense(1, 4, []float64{0, 0.02, 0.9, 1})
	p := thresholdParams(0.05)

	Threshold(regnet, p)
	once := mat.DenseCopyOf(regnet)
	Threshold(regnet, p)

	if !mat.Equal(once, regnet) {
		t.Fatalf("second application changed the matrix:\nonce:  %v\ntwice: %v",
			mat.Formatted(once), mat.Formatted(regnet))
	}
}

func TestThresholdSkippedForOtherFlagCombos(t *testing.T) {

	raw := []float64{0.01, 0.5, 0.99}

	combos := []params.Params{
		{OldMotif: 1, IncCoverage: 1, QPval: 0, Thresh: 0.05},
		{OldMotif: 0, IncCoverage: 0, QPval: 0, Thresh: 0.05},
		{OldMotif: 0, IncCoverage: 1, QPval: 1, Thresh: 0.05},
	}
	for _, p := range combos {
		regnet := mat.NewDense(1, 3, append([]float64(nil), raw...))
		Threshold(regnet, p)
		for j, w := range raw {
			if got := regnet.At(0, j); got != w {
				t.Errorf("flags %+v: cell %d = %v, want raw %v", p, j, got, w)
			}
		}
	}
}

func TestOverlayChIPPositive(t *testing.T) {

	tfs := []string{"TF1", "TF2"}
	genes := []string{"G1", "G2", "G3"}
	regnet := mat.NewDense(2, 3, []float64{
		0.2, 0.4, 0.6,
		0.1, 0.3, 0.5,
	})

	table := []dataset.ChIPEntry{
		{TF: "TF1", Targets: []string{"G3", "G9"}}, // G9 unknown, skipped
		{TF: "TF9", Targets: []string{"G1"}},       // TF9 not in the TF set
	}

	OverlayChIP(regnet, table, tfs, genes, 1)

	want := []float64{0, 0, 1}
	for j, w := range want {
		if got := regnet.At(0, j); got != w {
			t.Errorf("TF1 cell %d = %v, want %v", j, got, w)
		}
	}
	// TF2 has no ground truth and keeps its motif evidence.
	if got := regnet.At(1, 1); got != 0.3 {
		t.Errorf("TF2 row changed: %v", got)
	}
}

func TestOverlayChIPNegativeBaseline(t *testing.T) {

	tfs := []string{"TF1"}
	genes := []string{"G1", "G2", "G3"}
	regnet := mat.NewDense(1, 3, []float64{0.2, 0.4, 0.6})

	OverlayChIP(regnet, []dataset.ChIPEntry{{TF: "TF1", Targets: []string{"G2"}}}, tfs, genes, 2)

	want := []float64{-1, 1, -1}
	for j, w := range want {
		if got := regnet.At(0, j); got != w {
			t.Errorf("cell %d = %v, want %v", j, got, w)
		}
	}
}

func TestOverlayChIPEmptyTargetsRowAllNegative(t *testing.T) {

	// An assayed TF with zero listed targets ends up all -1 in mode 2.
	tfs := []string{"TF1"}
	genes := []string{"G1", "G2"}
	regnet := mat.NewDense(1, 2, []float64{0.9, 0.9})

	OverlayChIP(regnet, []dataset.ChIPEntry{{TF: "TF1"}}, tfs, genes, 2)

	for j := range genes {
		if got := regnet.At(0, j); got != -1 {
			t.Errorf("cell %d = %v, want -1", j, got)
		}
	}
}

func TestOverlayChIPModeZeroNoop(t *testing.T) {

	regnet := mat.NewDense(1, 1, []float64{0.42})

	OverlayChIP(regnet, []dataset.ChIPEntry{{TF: "TF1", Targets: []string{"G1"}}},
		[]string{"TF1"}, []string{"G1"}, 0)

	if got := regnet.At(0, 0); got != 0.42 {
		t.Errorf("mode 0 mutated the matrix: %v", got)
	}
}
