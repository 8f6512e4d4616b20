package prior

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
	"gonum.org/v1/gonum/mat"

	"github.com/yumyai/priornet/logger"
	"github.com/yumyai/priornet/pkg/artifact"
	"github.com/yumyai/priornet/pkg/dataset"
	"github.com/yumyai/priornet/pkg/params"
)

func TestMain(m *testing.M) {
	if err := logger.InitLogger(zapcore.ErrorLevel); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TF identifiers overlap gene identifiers here, the common real case.
func scenarioConfig(t *testing.T, dir string) Config {
	t.Helper()
	return Config{
		ExpressionPath: writeFile(t, dir, "expr.txt", "G1\t1\t2\nG2\t2\t1\nG3\t3\t3\n"),
		PPIPath:        writeFile(t, dir, "ppi.txt", "G1\tG2\nG2\tG3\n"),
		Motif:          dataset.RawFile{Path: writeFile(t, dir, "motif.txt", "G1\tG2\t0.5\n")},
		OutDir:         dir,
		Params:         params.Params{AddCorr: 0, IncCoverage: 0},
	}
}

func TestRunScenario(t *testing.T) {

	dir := t.TempDir()

	res, err := Run(context.Background(), scenarioConfig(t, dir))
	if err != nil {
		t.Fatal(err)
	}

	r, c := res.RegNet.Dims()
	if r != 2 || c != 3 {
		t.Fatalf("RegNet is %dx%d, want 2x3", r, c)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			want := 0.0
			if i == 0 && j == 1 { // (G1, G2)
				want = 0.5
			}
			if got := res.RegNet.At(i, j); got != want {
				t.Errorf("cell (%d,%d) = %v, want %v", i, j, got, want)
			}
		}
	}

	raw, err := os.ReadFile(res.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("wrote %d lines, want 6 (2 TFs x 3 genes)", len(lines))
	}

	back, err := artifact.ReadEdgeList(res.OutputPath, res.TFs, res.Genes)
	if err != nil {
		t.Fatal(err)
	}
	if !mat.Equal(back, res.RegNet) {
		t.Fatal("written artifact does not round-trip to the fused matrix")
	}
}

func TestRunDeterministic(t *testing.T) {

	dir := t.TempDir()
	cfg := scenarioConfig(t, dir)

	first, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	firstBytes, err := os.ReadFile(first.OutputPath)
	if err != nil {
		t.Fatal(err)
	}

	second, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	secondBytes, err := os.ReadFile(second.OutputPath)
	if err != nil {
		t.Fatal(err)
	}

	if first.OutputPath != second.OutputPath {
		t.Errorf("filenames diverge: %q vs %q", first.OutputPath, second.OutputPath)
	}
	if string(firstBytes) != string(secondBytes) {
		t.Error("identical runs are not byte-identical")
	}
}

func TestRunWithCoexpressionFusion(t *testing.T) {

	dir := t.TempDir()
	cfg := scenarioConfig(t, dir)
	cfg.Params.AddCorr = 1
	cfg.Params.MotifWeight = 1 // evidence only, motif discarded

	res, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	// With weight 1 the output is exactly the projected |coexpression|
	// (post imputation, cutoff 0), independent of the motif file.
	coregRow := func(i, j int) float64 { return res.RegNet.At(i, j) }
	if got := coregRow(0, 1); got <= 0 || got > 1 {
		t.Errorf("(G1,G2) = %v, want a correlation strength in (0,1]", got)
	}
	r, c := res.RegNet.Dims()
	if r != 2 || c != 3 {
		t.Fatalf("RegNet is %dx%d, want 2x3", r, c)
	}
}

func TestRunShapeInvariant(t *testing.T) {

	// Shape must hold across parameter combinations.
	combos := []params.Params{
		{AddCorr: 0, IncCoverage: 0},
		{AddCorr: 2, MotifWeight: 0.5, IncCoverage: 0},
		{AddCorr: 4, MotifWeight: 0.5, MotifCutOff: 0.2, IncCoverage: 0},
		{AddCorr: 0, IncCoverage: 1, Thresh: 0.05},
	}
	for _, p := range combos {
		dir := t.TempDir()
		cfg := scenarioConfig(t, dir)
		cfg.Params = p

		res, err := Run(context.Background(), cfg)
		if err != nil {
			t.Fatalf("params %+v: %v", p, err)
		}
		if r, c := res.RegNet.Dims(); r != 2 || c != 3 {
			t.Errorf("params %+v: RegNet is %dx%d, want 2x3", p, r, c)
		}
	}
}

func TestRunChIPOverlay(t *testing.T) {

	dir := t.TempDir()
	cfg := scenarioConfig(t, dir)
	cfg.ChIPPath = writeFile(t, dir, "chip.txt", "G1\tG1\tG3\nG2\n")
	cfg.Params.AddChip = 2

	res, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	// G1 row: targets G1 and G3 positive, G2 assayed-negative.
	wantG1 := []float64{1, -1, 1}
	for j, w := range wantG1 {
		if got := res.RegNet.At(0, j); got != w {
			t.Errorf("G1 cell %d = %v, want %v", j, got, w)
		}
	}
	// G2 has an entry with no targets: whole row -1.
	for j := 0; j < 3; j++ {
		if got := res.RegNet.At(1, j); got != -1 {
			t.Errorf("G2 cell %d = %v, want -1", j, got)
		}
	}
}

func TestRunMissingChIPFile(t *testing.T) {

	dir := t.TempDir()
	cfg := scenarioConfig(t, dir)
	cfg.Params.AddChip = 1

	if _, err := Run(context.Background(), cfg); err == nil {
		t.Fatal("expected error when addChip is set without a ChIP file")
	}
}

func TestRunRejectsBadParams(t *testing.T) {

	dir := t.TempDir()
	cfg := scenarioConfig(t, dir)
	cfg.Params.MotifWeight = 1.5

	if _, err := Run(context.Background(), cfg); err == nil {
		t.Fatal("expected validation error for motifWeight > 1")
	}
}
