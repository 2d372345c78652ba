/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: distribution.go
Description: Joint probability distribution over binary random variables. State s is an
N-bit integer whose bit b holds the value of variable b. Provides validated cell access,
validity checks, normalization and random generation.
*/

package distribution

import (
	"fmt"
	"math"
	"math/bits"
	"math/rand"

	"github.com/kleascm/condprob/pkg/core"
)

// Bounds of the raw weights drawn by GenerateRandom before normalization
const (
	randomWeightMin = 0.1
	randomWeightMax = 10.0
)

// Binary is a joint distribution over N binary variables
type Binary struct {
	variables int
	maxIndex  uint64
	cells     store
}

// New creates an all-zero distribution over n variables.
// It is not valid until probabilities summing to 1 are assigned.
func New(n int) (*Binary, error) {
	if err := core.ValidateVariableCount(n); err != nil {
		return nil, err
	}

	d := &Binary{
		variables: n,
		maxIndex:  core.FullMask(n),
	}
	if n <= core.DenseLimit {
		d.cells = newDenseStore(uint64(1) << uint(n))
	} else {
		d.cells = newSparseStore()
	}
	return d, nil
}

// FromProbabilities builds a dense distribution from a table whose length is 2^N.
// Cells may sit up to Epsilon outside [0, 1] and are clamped into range.
func FromProbabilities(p []float64) (*Binary, error) {
	size := uint64(len(p))
	if size < 2 || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: table length must be a power of two >= 2, got %d", core.ErrInvalidArgument, len(p))
	}
	n := bits.TrailingZeros64(size)
	if n > core.DenseLimit {
		return nil, fmt.Errorf("%w: %d variables", core.ErrStateSpaceTooLarge, n)
	}

	d, err := New(n)
	if err != nil {
		return nil, err
	}
	for i, v := range p {
		if math.IsNaN(v) || v < -core.Epsilon || v > 1+core.Epsilon {
			return nil, fmt.Errorf("%w: probability %v at state %d outside [0, 1]", core.ErrInvalidArgument, v, i)
		}
		d.cells.set(uint64(i), math.Min(1, math.Max(0, v)))
	}
	return d, nil
}

// VariableCount returns N
func (d *Binary) VariableCount() int { return d.variables }

// MaxIndex returns the largest valid state, 2^N - 1
func (d *Binary) MaxIndex() uint64 { return d.maxIndex }

// StateSpaceSize returns 2^N. For N = 64 the value is not representable and
// saturates at 2^64 - 1.
func (d *Binary) StateSpaceSize() uint64 {
	if d.variables >= 64 {
		return math.MaxUint64
	}
	return uint64(1) << uint(d.variables)
}

// IsDense reports whether every cell of the state space is held in memory
func (d *Binary) IsDense() bool {
	_, ok := d.cells.(*denseStore)
	return ok
}

// StoredCells returns the number of cells held in memory
func (d *Binary) StoredCells() uint64 { return d.cells.stored() }

// Probability returns the mass of state index
func (d *Binary) Probability(index uint64) (float64, error) {
	if index > d.maxIndex {
		return 0, fmt.Errorf("%w: state %d exceeds maximum %d", core.ErrOutOfRange, index, d.maxIndex)
	}
	return d.cells.get(index), nil
}

// SetProbability assigns the mass of state index
func (d *Binary) SetProbability(index uint64, p float64) error {
	if index > d.maxIndex {
		return fmt.Errorf("%w: state %d exceeds maximum %d", core.ErrOutOfRange, index, d.maxIndex)
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%w: probability must be between 0 and 1, got %v", core.ErrInvalidArgument, p)
	}
	d.cells.set(index, p)
	return nil
}

// Scan visits states in ascending order. Dense tables visit every state of the
// space; sparse tables visit only states with nonzero mass.
func (d *Binary) Scan(fn func(state uint64, p float64)) {
	d.cells.scan(func(state uint64, p float64) bool {
		fn(state, p)
		return true
	})
}

// Probabilities returns a copy of the dense table indexed by state
func (d *Binary) Probabilities() ([]float64, error) {
	dense, ok := d.cells.(*denseStore)
	if !ok {
		return nil, fmt.Errorf("%w: %d variables are stored sparsely", core.ErrStateSpaceTooLarge, d.variables)
	}
	out := make([]float64, len(dense.cells))
	copy(out, dense.cells)
	return out, nil
}

// Sum returns the total mass of the table
func (d *Binary) Sum() float64 {
	sum := 0.0
	d.cells.scan(func(_ uint64, p float64) bool {
		sum += p
		return true
	})
	return sum
}

// IsValid reports whether every cell lies in [-Epsilon, 1+Epsilon] and the
// table sums to 1 within Epsilon
func (d *Binary) IsValid() bool {
	sum := 0.0
	valid := true
	d.cells.scan(func(_ uint64, p float64) bool {
		if p < -core.Epsilon || p > 1+core.Epsilon {
			valid = false
			return false
		}
		sum += p
		return true
	})
	return valid && math.Abs(sum-1) < core.Epsilon
}

// Normalize divides every cell by the table sum
func (d *Binary) Normalize() error {
	sum := d.Sum()
	if sum < core.Epsilon {
		return fmt.Errorf("%w: cannot normalize, total mass %g", core.ErrDegenerateState, sum)
	}
	d.cells.scale(1 / sum)
	return nil
}

// GenerateRandom fills every cell with a weight drawn uniformly from (0.1, 10.0)
// and normalizes, yielding a strictly positive valid distribution.
// A nil rng uses the package-level source.
func (d *Binary) GenerateRandom(rng *rand.Rand) error {
	if !d.IsDense() {
		return fmt.Errorf("%w: cannot randomize %d variables", core.ErrStateSpaceTooLarge, d.variables)
	}
	draw := rand.Float64
	if rng != nil {
		draw = rng.Float64
	}
	span := randomWeightMax - randomWeightMin
	for i := uint64(0); i <= d.maxIndex; i++ {
		w := randomWeightMin + draw()*span
		if w == randomWeightMin {
			w = math.Nextafter(randomWeightMin, randomWeightMax)
		}
		d.cells.set(i, w)
	}
	return d.Normalize()
}

// Clone returns an independent copy
func (d *Binary) Clone() *Binary {
	c, _ := New(d.variables)
	d.Scan(func(state uint64, p float64) {
		c.cells.set(state, p)
	})
	return c
}
