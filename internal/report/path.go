package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/inodb/vcf-anon/internal/verify"
)

// BaseName is the report file name without extension.
const BaseName = "VCF_anonymization_verification_report"

// NextPath creates dir if needed and returns the first free report path in
// it: BaseName.csv, then BaseName_2.csv, BaseName_3.csv and so on.
func NextPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve report directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}

	for i := 1; ; i++ {
		name := BaseName + ".csv"
		if i > 1 {
			name = fmt.Sprintf("%s_%d.csv", BaseName, i)
		}
		path := filepath.Join(abs, name)
		_, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
	}
}

// WriteFile writes results to a new report file in dir and returns its path.
func WriteFile(dir string, results []verify.Result) (string, error) {
	path, err := NextPath(dir)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}

	w := NewCSVWriter(f)
	if err := w.WriteHeader(); err != nil {
		f.Close()
		return "", fmt.Errorf("write report header: %w", err)
	}
	for _, r := range results {
		if err := w.Write(r); err != nil {
			f.Close()
			return "", fmt.Errorf("write report row: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report: %w", err)
	}
	return path, nil
}
