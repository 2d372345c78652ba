/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: distribution_test.go
Description: Tests for binary joint distributions: construction bounds, cell access,
normalization, random generation and sparse storage.
*/

package distribution_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/kleascm/condprob/pkg/core"
	"github.com/kleascm/condprob/pkg/distribution"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBounds(t *testing.T) {
	for _, n := range []int{0, -1, 65} {
		_, err := distribution.New(n)
		assert.True(t, errors.Is(err, core.ErrInvalidArgument), "n=%d", n)
	}

	d, err := distribution.New(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), d.MaxIndex())
	assert.Equal(t, uint64(2), d.StateSpaceSize())
	assert.True(t, d.IsDense())

	d, err = distribution.New(64)
	require.NoError(t, err)
	assert.Equal(t, ^uint64(0), d.MaxIndex())
	assert.Equal(t, uint64(math.MaxUint64), d.StateSpaceSize())
	assert.False(t, d.IsDense())
	assert.Equal(t, uint64(0), d.StoredCells())
}

func TestNewIsAllZero(t *testing.T) {
	d, err := distribution.New(3)
	require.NoError(t, err)
	for i := uint64(0); i <= d.MaxIndex(); i++ {
		p, err := d.Probability(i)
		require.NoError(t, err)
		assert.Zero(t, p)
	}
	assert.False(t, d.IsValid())
}

func TestProbabilityAccess(t *testing.T) {
	d, err := distribution.New(2)
	require.NoError(t, err)

	require.NoError(t, d.SetProbability(3, 0.25))
	p, err := d.Probability(3)
	require.NoError(t, err)
	assert.Equal(t, 0.25, p)

	_, err = d.Probability(4)
	assert.True(t, errors.Is(err, core.ErrOutOfRange))
	assert.True(t, errors.Is(d.SetProbability(4, 0.1), core.ErrOutOfRange))
	assert.True(t, errors.Is(d.SetProbability(0, -0.1), core.ErrInvalidArgument))
	assert.True(t, errors.Is(d.SetProbability(0, 1.1), core.ErrInvalidArgument))
	assert.True(t, errors.Is(d.SetProbability(0, math.NaN()), core.ErrInvalidArgument))
}

func TestNormalize(t *testing.T) {
	d, err := distribution.New(2)
	require.NoError(t, err)
	for i, p := range []float64{0.1, 0.2, 0.3, 0.4} {
		require.NoError(t, d.SetProbability(uint64(i), p/2))
	}
	assert.False(t, d.IsValid())

	require.NoError(t, d.Normalize())
	assert.True(t, d.IsValid())
	p, _ := d.Probability(3)
	assert.InDelta(t, 0.4, p, 1e-12)
}

func TestNormalizeDegenerate(t *testing.T) {
	d, err := distribution.New(3)
	require.NoError(t, err)
	assert.True(t, errors.Is(d.Normalize(), core.ErrDegenerateState))
}

func TestGenerateRandom(t *testing.T) {
	d, err := distribution.New(6)
	require.NoError(t, err)
	require.NoError(t, d.GenerateRandom(rand.New(rand.NewSource(42))))
	assert.True(t, d.IsValid())
	d.Scan(func(_ uint64, p float64) {
		assert.Greater(t, p, 0.0)
	})

	again, _ := distribution.New(6)
	require.NoError(t, again.GenerateRandom(rand.New(rand.NewSource(42))))
	a, _ := d.Probabilities()
	b, _ := again.Probabilities()
	assert.Equal(t, a, b)

	sparse, _ := distribution.New(core.DenseLimit + 1)
	assert.True(t, errors.Is(sparse.GenerateRandom(nil), core.ErrStateSpaceTooLarge))
}

func TestFromProbabilities(t *testing.T) {
	d, err := distribution.FromProbabilities([]float64{0.2, 0.3, 0.1, 0.4})
	require.NoError(t, err)
	assert.Equal(t, 2, d.VariableCount())
	assert.True(t, d.IsValid())

	d, err = distribution.FromProbabilities([]float64{-1e-12, 1 + 1e-12})
	require.NoError(t, err)
	p0, _ := d.Probability(0)
	p1, _ := d.Probability(1)
	assert.Equal(t, 0.0, p0)
	assert.Equal(t, 1.0, p1)

	_, err = distribution.FromProbabilities([]float64{1})
	assert.True(t, errors.Is(err, core.ErrInvalidArgument))
	_, err = distribution.FromProbabilities([]float64{0.5, 0.25, 0.25})
	assert.True(t, errors.Is(err, core.ErrInvalidArgument))
	_, err = distribution.FromProbabilities([]float64{0.5, 1.5})
	assert.True(t, errors.Is(err, core.ErrInvalidArgument))

	// the sum is not enforced, so all-zero outputs can be wrapped
	d, err = distribution.FromProbabilities([]float64{0.5, 0.7})
	require.NoError(t, err)
	assert.False(t, d.IsValid())
	d, err = distribution.FromProbabilities([]float64{0, 0})
	require.NoError(t, err)
	assert.False(t, d.IsValid())
}

func TestSparseStorage(t *testing.T) {
	d, err := distribution.New(64)
	require.NoError(t, err)

	top := ^uint64(0)
	require.NoError(t, d.SetProbability(top, 0.75))
	require.NoError(t, d.SetProbability(5, 0.25))
	assert.Equal(t, uint64(2), d.StoredCells())
	assert.True(t, d.IsValid())

	var visited []uint64
	d.Scan(func(state uint64, _ float64) { visited = append(visited, state) })
	assert.Equal(t, []uint64{5, top}, visited)

	require.NoError(t, d.SetProbability(5, 0))
	assert.Equal(t, uint64(1), d.StoredCells())

	_, err = d.Probabilities()
	assert.True(t, errors.Is(err, core.ErrStateSpaceTooLarge))

	require.NoError(t, d.Normalize())
	p, _ := d.Probability(top)
	assert.InDelta(t, 1.0, p, 1e-12)
}

func TestClone(t *testing.T) {
	d, _ := distribution.FromProbabilities([]float64{0.5, 0.5})
	c := d.Clone()
	require.NoError(t, c.SetProbability(0, 1))
	p, _ := d.Probability(0)
	assert.Equal(t, 0.5, p)
}

func TestRender(t *testing.T) {
	d, _ := distribution.FromProbabilities([]float64{0.25, 0, 0.75, 0})
	out := d.String()
	assert.Contains(t, out, "=== Binary distribution (N=2) ===")
	assert.Contains(t, out, "X2 X1")
	assert.Contains(t, out, "0.750000")
	assert.NotContains(t, out, "\n01 ")
	assert.Contains(t, out, "Total probability: 1.000000")
}
