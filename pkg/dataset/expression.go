package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Expression holds the parsed expression table. Genes keeps the row order of
// the input file; that order defines the column order of every downstream
// matrix.
type Expression struct {
	Genes []string

	// Data is conditions x genes, transposed from the on-disk
	// genes x conditions layout so each column is one gene profile.
	Data *mat.Dense
}

func (e *Expression) NumGenes() int      { return len(e.Genes) }
func (e *Expression) NumConditions() int { r, _ := e.Data.Dims(); return r }

// LoadExpression reads a header-free whitespace-delimited table where column
// 1 is the gene id and columns 2..N are numeric expression values.
func LoadExpression(path string) (*Expression, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open expression file: %w", err)
	}
	defer f.Close()

	var (
		genes    []string
		values   []float64 // row-major genes x conditions, transposed below
		numConds = -1
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	lineno := 0
	for scanner.Scan() {
		lineno++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, &MalformedInputError{Path: path, Line: lineno, Msg: "expected gene id plus at least one expression value"}
		}
		if numConds == -1 {
			numConds = len(fields) - 1
		} else if len(fields)-1 != numConds {
			return nil, &MalformedInputError{Path: path, Line: lineno,
				Msg: fmt.Sprintf("expected %d expression values, got %d", numConds, len(fields)-1)}
		}

		genes = append(genes, fields[0])
		for _, s := range fields[1:] {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, &MalformedInputError{Path: path, Line: lineno,
					Msg: fmt.Sprintf("non-numeric expression value %q", s)}
			}
			values = append(values, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read expression file: %w", err)
	}
	if len(genes) == 0 {
		return nil, &MalformedInputError{Path: path, Msg: "no expression rows"}
	}

	// Transpose into conditions x genes.
	data := mat.NewDense(numConds, len(genes), nil)
	for i := range genes {
		for j := 0; j < numConds; j++ {
			data.Set(j, i, values[i*numConds+j])
		}
	}

	return &Expression{Genes: genes, Data: data}, nil
}
