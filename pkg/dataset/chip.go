package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ChIPEntry is one row of the ground-truth table: a TF and its validated
// target genes. Targets may be empty (a TF assayed with no called peaks).
type ChIPEntry struct {
	TF      string
	Targets []string
}

// LoadChIP reads the ground-truth table: column 1 is the TF id, the rest of
// the row its target genes. Rows are ragged.
func LoadChIP(path string) ([]ChIPEntry, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ChIP file: %w", err)
	}
	defer f.Close()

	var entries []ChIPEntry

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		entries = append(entries, ChIPEntry{TF: fields[0], Targets: fields[1:]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ChIP file: %w", err)
	}
	if len(entries) == 0 {
		return nil, &MalformedInputError{Path: path, Msg: "no ChIP rows"}
	}

	return entries, nil
}
