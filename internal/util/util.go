package util

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

func DirExists(path string) bool {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	return info.IsDir()
}

// BaseNoExt returns the file name without directory and without the last
// extension. "data/motif.pvals.txt" -> "motif.pvals"
func BaseNoExt(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext)
}
