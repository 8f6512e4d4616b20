// Package artifact names and serializes the finished regulatory prior.
package artifact

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yumyai/priornet/internal/util"
	"github.com/yumyai/priornet/pkg/params"
	"gonum.org/v1/gonum/mat"
)

// OutputName builds the artifact filename from everything that affects the
// result, so distinct parameterizations never collide and identical runs
// always land on the same file.
func OutputName(p params.Params, exprPath, motifLabel string) string {
	parts := []string{
		"prior",
		util.BaseNoExt(exprPath),
		motifLabel,
		"mw" + ftoa(p.MotifWeight),
		"mc" + ftoa(p.MotifCutOff),
		"ac" + strconv.Itoa(p.AddCorr),
		"ab" + strconv.Itoa(p.AbsCoex),
		"th" + ftoa(p.Thresh),
		"om" + strconv.Itoa(p.OldMotif),
		"ic" + strconv.Itoa(p.IncCoverage),
		"qp" + strconv.Itoa(p.QPval),
		"bp" + strconv.Itoa(p.BridgingProteins),
		"chip" + strconv.Itoa(p.AddChip),
		"ctrl" + strconv.Itoa(p.Ctrl),
	}
	return strings.Join(parts, "_") + ".tsv"
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteEdgeList serializes the matrix as TF\tgene\tweight lines, all genes
// of TF 1 first, then TF 2 and so on. The order and the weight format are
// part of the output contract (byte-identical regression runs). Weights are
// fixed-point decimals with the shortest representation that parses back to
// the same float64, so a written artifact is a lossless serialization of
// the fused matrix.
func WriteEdgeList(path string, regnet *mat.Dense, tfs, genes []string) error {

	r, c := regnet.Dims()
	if r != len(tfs) || c != len(genes) {
		return fmt.Errorf("matrix is %dx%d, want %dx%d", r, c, len(tfs), len(genes))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create edge list: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i, tf := range tfs {
		for j, gene := range genes {
			fmt.Fprintf(w, "%s\t%s\t%s\n", tf, gene, strconv.FormatFloat(regnet.At(i, j), 'f', -1, 64))
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write edge list: %w", err)
	}
	return nil
}

// ReadEdgeList rebuilds the dense matrix from a written edge list. Unlike
// the motif loader it is strict: every TF and gene must be known, so a
// written artifact always round-trips.
func ReadEdgeList(path string, tfs, genes []string) (*mat.Dense, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open edge list: %w", err)
	}
	defer f.Close()

	tfIdx := make(map[string]int, len(tfs))
	for i, tf := range tfs {
		tfIdx[tf] = i
	}
	geneIdx := make(map[string]int, len(genes))
	for j, g := range genes {
		geneIdx[g] = j
	}

	regnet := mat.NewDense(len(tfs), len(genes), nil)

	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("%s:%d: expected 3 columns, got %d", path, lineno, len(fields))
		}
		i, ok := tfIdx[fields[0]]
		if !ok {
			return nil, fmt.Errorf("%s:%d: unknown TF %q", path, lineno, fields[0])
		}
		j, ok := geneIdx[fields[1]]
		if !ok {
			return nil, fmt.Errorf("%s:%d: unknown gene %q", path, lineno, fields[1])
		}
		v, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad weight %q", path, lineno, fields[2])
		}
		regnet.Set(i, j, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read edge list: %w", err)
	}

	return regnet, nil
}
