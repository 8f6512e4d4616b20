package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadTFs reads the PPI edge list and returns the unique values of column 1
// in order of first occurrence. Only the first column is consumed here; the
// rest of the PPI network belongs to the bridging-protein collaborator.
func LoadTFs(path string) ([]string, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open PPI file: %w", err)
	}
	defer f.Close()

	var (
		tfs  []string
		seen = make(map[string]struct{})
	)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		tf := fields[0]
		if _, ok := seen[tf]; ok {
			continue
		}
		seen[tf] = struct{}{}
		tfs = append(tfs, tf)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read PPI file: %w", err)
	}
	if len(tfs) == 0 {
		return nil, &MalformedInputError{Path: path, Msg: "no TF rows"}
	}

	return tfs, nil
}
