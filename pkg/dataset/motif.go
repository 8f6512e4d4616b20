package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yumyai/priornet/internal/util"
	"gonum.org/v1/gonum/mat"
)

// MotifSource is either a raw three-column edge list on disk or a matrix an
// external caller already built (re-entry path: nothing is re-parsed).
type MotifSource interface {
	motifSource()
}

type RawFile struct {
	Path string
}

type Prebuilt struct {
	Matrix *mat.Dense
	Label  string
}

func (RawFile) motifSource()  {}
func (Prebuilt) motifSource() {}

// Motif is the loader output: the dense TF x gene prior, the label carried
// into the output filename, and how many edge-list rows survived the
// intersection (0 signals an empty intersection to the caller).
type Motif struct {
	RegNet    *mat.Dense
	Label     string
	KeptEdges int
}

// ResolveMotif builds the dense regulatory matrix from src, aligned to the
// given TF row order and gene column order. Unmatched edge-list rows are
// dropped; unset cells stay zero.
func ResolveMotif(src MotifSource, tfs, genes []string) (*Motif, error) {

	switch s := src.(type) {
	case Prebuilt:
		r, c := s.Matrix.Dims()
		if r != len(tfs) || c != len(genes) {
			return nil, fmt.Errorf("prebuilt motif matrix is %dx%d, want %dx%d", r, c, len(tfs), len(genes))
		}
		kept := 0
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				if s.Matrix.At(i, j) != 0 {
					kept++
				}
			}
		}
		return &Motif{RegNet: s.Matrix, Label: s.Label, KeptEdges: kept}, nil

	case RawFile:
		return loadMotifFile(s.Path, tfs, genes)

	default:
		return nil, fmt.Errorf("unknown motif source %T", src)
	}
}

func loadMotifFile(path string, tfs, genes []string) (*Motif, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open motif file: %w", err)
	}
	defer f.Close()

	tfIdx := indexOf(tfs)
	geneIdx := indexOf(genes)

	regnet := mat.NewDense(len(tfs), len(genes), nil)
	kept := 0

	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return nil, &MalformedInputError{Path: path, Line: lineno,
				Msg: fmt.Sprintf("expected 3 columns (TF gene weight), got %d", len(fields))}
		}
		w, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, &MalformedInputError{Path: path, Line: lineno,
				Msg: fmt.Sprintf("non-numeric weight %q", fields[2])}
		}

		i, okTF := tfIdx[fields[0]]
		j, okGene := geneIdx[fields[1]]
		if !okTF || !okGene {
			continue
		}
		regnet.Set(i, j, w)
		kept++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read motif file: %w", err)
	}

	return &Motif{RegNet: regnet, Label: util.BaseNoExt(path), KeptEdges: kept}, nil
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
