package vcf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileSuffixes are the file name endings treated as VCF files when listing
// a directory.
var FileSuffixes = []string{".vcf.gz", ".vcf.bgz", ".vcf"}

// IsVCFName reports whether name ends in one of FileSuffixes.
func IsVCFName(name string) bool {
	for _, s := range FileSuffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// ListFiles returns the names of the VCF files directly under dir, sorted.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &IOError{Op: "list", Path: dir, Err: err}
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !IsVCFName(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// ListPaths is like ListFiles but returns paths joined with dir.
func ListPaths(dir string) ([]string, error) {
	names, err := ListFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	for i, n := range names {
		names[i] = filepath.Join(dir, n)
	}
	return names, nil
}
