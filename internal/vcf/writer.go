package vcf

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/biogo/hts/bgzf"
)

// Writer writes records in VCF format. Every column except ALT is written
// back exactly as it was read.
type Writer struct {
	w    *bufio.Writer
	bgzf *bgzf.Writer // non-nil when writing block-compressed output
	file *os.File
	path string
}

// Create opens path for writing. Paths ending in .gz or .bgz are written
// BGZF-compressed; anything else is written as plain text.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}

	vw := &Writer{file: f, path: path}
	if IsCompressedPath(path) {
		vw.bgzf = bgzf.NewWriter(f, 1)
		vw.w = bufio.NewWriter(vw.bgzf)
	} else {
		vw.w = bufio.NewWriter(f)
	}
	return vw, nil
}

// NewWriter creates a plain-text VCF writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// IsCompressedPath reports whether path names a compressed VCF.
func IsCompressedPath(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".gz") || strings.HasSuffix(lower, ".bgz")
}

// WriteHeader writes the given header lines (## and #CHROM).
func (vw *Writer) WriteHeader(lines []string) error {
	for _, line := range lines {
		if _, err := vw.w.WriteString(line + "\n"); err != nil {
			return vw.ioErr("write", err)
		}
	}
	return nil
}

// Write writes a single record line.
func (vw *Writer) Write(r *Record) error {
	var lb strings.Builder
	lb.Grow(128 + len(r.RawInfo) + len(r.SampleColumns))

	lb.WriteString(r.Chrom)
	lb.WriteByte('\t')
	lb.WriteString(strconv.FormatInt(r.Pos, 10))
	lb.WriteByte('\t')
	lb.WriteString(orMissing(r.ID))
	lb.WriteByte('\t')
	lb.WriteString(orMissing(r.Ref))
	lb.WriteByte('\t')
	lb.WriteString(r.AltString())
	lb.WriteByte('\t')
	lb.WriteString(orMissing(r.Qual))
	lb.WriteByte('\t')
	lb.WriteString(orMissing(r.Filter))
	lb.WriteByte('\t')
	lb.WriteString(orMissing(r.RawInfo))

	// Append FORMAT + sample columns if present
	if r.SampleColumns != "" {
		lb.WriteByte('\t')
		lb.WriteString(r.SampleColumns)
	}

	lb.WriteByte('\n')
	if _, err := vw.w.WriteString(lb.String()); err != nil {
		return vw.ioErr("write", err)
	}
	return nil
}

// Flush flushes buffered data to the underlying writer.
func (vw *Writer) Flush() error {
	if err := vw.w.Flush(); err != nil {
		return vw.ioErr("write", err)
	}
	return nil
}

// Close flushes buffered data and closes the compressor and file, if any.
func (vw *Writer) Close() error {
	err := vw.Flush()
	if vw.bgzf != nil {
		if cerr := vw.bgzf.Close(); cerr != nil && err == nil {
			err = vw.ioErr("close", cerr)
		}
	}
	if vw.file != nil {
		if cerr := vw.file.Close(); cerr != nil && err == nil {
			err = vw.ioErr("close", cerr)
		}
	}
	return err
}

// Path returns the output path, or "" for writers not backed by a file.
func (vw *Writer) Path() string {
	return vw.path
}

func (vw *Writer) ioErr(op string, err error) error {
	if IsIOError(err) {
		return err
	}
	return &IOError{Op: op, Path: vw.path, Err: err}
}

func orMissing(s string) string {
	if s == "" {
		return "."
	}
	return s
}
