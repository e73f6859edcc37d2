package vcf

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_PreservesColumns(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	r := &Record{
		Chrom:         "12",
		Pos:           25245351,
		ID:            "rs121913529",
		Ref:           "C",
		Alt:           []string{"A", "CNGCNG"},
		Qual:          "100",
		Filter:        "PASS",
		RawInfo:       "AF=0.1,0.2;DB",
		SampleColumns: "GT:DP\t0/1:30",
	}
	require.NoError(t, w.Write(r))
	require.NoError(t, w.Flush())

	assert.Equal(t, "12\t25245351\trs121913529\tC\tA,CNGCNG\t100\tPASS\tAF=0.1,0.2;DB\tGT:DP\t0/1:30\n", buf.String())
}

func TestWriter_MissingColumns(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.Write(&Record{Chrom: "1", Pos: 5, Ref: "A", Alt: []string{"."}}))
	require.NoError(t, w.Flush())

	assert.Equal(t, "1\t5\t.\tA\t.\t.\t.\t.\n", buf.String())
}

func TestWriter_Header(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	header := []string{"##fileformat=VCFv4.2", "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO"}
	require.NoError(t, w.WriteHeader(header))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, header, lines)
}

func TestWriter_CompressedRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.vcf.gz")
	w, err := Create(path)
	require.NoError(t, err)
	assert.Equal(t, path, w.Path())

	header := []string{"##fileformat=VCFv4.2", "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO"}
	require.NoError(t, w.WriteHeader(header))
	for i := 0; i < 3; i++ {
		require.NoError(t, w.Write(&Record{
			Chrom: "X", Pos: int64(10 + i), ID: ".", Ref: "G", Alt: []string{"T"},
			Qual: ".", Filter: "PASS", RawInfo: "MAF=0.001",
		}))
	}
	require.NoError(t, w.Close())

	p, err := NewParser(path)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, header, p.Header())

	count := 0
	for {
		r, err := p.Next()
		require.NoError(t, err)
		if r == nil {
			break
		}
		assert.Equal(t, int64(10+count), r.Pos)
		assert.Equal(t, []string{"0.001"}, r.Info["MAF"])
		count++
	}
	assert.Equal(t, 3, count)
}

func TestCreate_BadPathIsIOError(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "missing", "dir", "out.vcf"))
	require.Error(t, err)
	assert.True(t, IsIOError(err))
}

func TestIsCompressedPath(t *testing.T) {
	assert.True(t, IsCompressedPath("a.vcf.gz"))
	assert.True(t, IsCompressedPath("a.vcf.bgz"))
	assert.True(t, IsCompressedPath("A.VCF.GZ"))
	assert.False(t, IsCompressedPath("a.vcf"))
}
