/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: table_test.go
Description: Tests for the bitstring table format: conversions, parse failures and
file round trips with and without compression.
*/

package distribution_test

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kleascm/condprob/pkg/core"
	"github.com/kleascm/condprob/pkg/distribution"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitstringConversion(t *testing.T) {
	d, _ := distribution.New(4)
	assert.Equal(t, "0101", d.IndexToBitstring(5))
	assert.Equal(t, "1111", d.IndexToBitstring(15))

	index, err := d.BitstringToIndex("1010")
	require.NoError(t, err)
	assert.Equal(t, uint64(10), index)

	for i := uint64(0); i <= d.MaxIndex(); i++ {
		back, err := d.BitstringToIndex(d.IndexToBitstring(i))
		require.NoError(t, err)
		assert.Equal(t, i, back)
	}

	_, err = d.BitstringToIndex("101")
	assert.True(t, errors.Is(err, core.ErrInconsistentLength))
	_, err = d.BitstringToIndex("10x1")
	assert.True(t, errors.Is(err, core.ErrFormat))
}

func TestReadTable(t *testing.T) {
	input := "00,0.2\n01,0.3\n\n  10,0.1  \n11,0.4\n"
	d, err := distribution.Read(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, d.VariableCount())
	assert.True(t, d.IsValid())

	p, _ := d.Probability(0b01)
	assert.Equal(t, 0.3, p)
}

func TestReadTableMissingStatesAreZero(t *testing.T) {
	d, err := distribution.Read(strings.NewReader("110,1.0\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, d.VariableCount())
	p, _ := d.Probability(0b110)
	assert.Equal(t, 1.0, p)
	p, _ = d.Probability(0)
	assert.Zero(t, p)
}

func TestReadTableErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
		line  int
	}{
		{"empty", "", core.ErrEmptyFile, 0},
		{"blank lines only", "\n  \n", core.ErrEmptyFile, 0},
		{"missing comma", "00,0.5\n01 0.5\n", core.ErrFormat, 2},
		{"bad number", "00,abc\n", core.ErrFormat, 1},
		{"empty bitstring", ",0.3\n", core.ErrFormat, 1},
		{"empty bitstring after first record", "00,0.5\n ,0.3\n", core.ErrFormat, 2},
		{"bad character", "0a,0.5\n", core.ErrFormat, 1},
		{"inconsistent length", "00,0.5\n011,0.5\n", core.ErrInconsistentLength, 2},
		{"probability above one", "0,1.5\n", core.ErrInvalidArgument, 1},
		{"too many variables", strings.Repeat("0", 65) + ",1\n", core.ErrInvalidArgument, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := distribution.Read(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)

			if tt.line > 0 {
				var lineErr *core.LineError
				require.True(t, errors.As(err, &lineErr))
				assert.Equal(t, tt.line, lineErr.Line)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := distribution.Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.True(t, errors.Is(err, core.ErrIO))
}

func TestExportLoadRoundTrip(t *testing.T) {
	d, _ := distribution.New(5)
	require.NoError(t, d.GenerateRandom(rand.New(rand.NewSource(7))))
	dir := t.TempDir()

	for _, name := range []string{"joint.txt", "joint.txt.gz", "joint.txt.zst", "joint.txt.lz4"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, d.Export(path))

			loaded, err := distribution.Load(path)
			require.NoError(t, err)
			require.Equal(t, d.VariableCount(), loaded.VariableCount())

			for i := uint64(0); i <= d.MaxIndex(); i++ {
				want, _ := d.Probability(i)
				got, _ := loaded.Probability(i)
				assert.InDelta(t, want, got, 1e-9)
			}
		})
	}
}

func TestExportFormat(t *testing.T) {
	d, _ := distribution.FromProbabilities([]float64{0.25, 0.75})
	path := filepath.Join(t.TempDir(), "out", "joint.txt")
	require.NoError(t, d.Export(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0,0.2500000000\n1,0.7500000000\n", string(data))
}

func TestSparseRoundTrip(t *testing.T) {
	d, _ := distribution.New(40)
	require.NoError(t, d.SetProbability(1<<39, 0.5))
	require.NoError(t, d.SetProbability(3, 0.5))

	var sb strings.Builder
	require.NoError(t, d.Write(&sb))
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 2)

	loaded, err := distribution.Read(strings.NewReader(sb.String()))
	require.NoError(t, err)
	assert.False(t, loaded.IsDense())
	assert.True(t, loaded.IsValid())
}
