/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: storage.go
Description: Backing stores for joint probability tables. Small tables are dense slices
indexed by joint state; large tables keep only states with nonzero mass, tracked in a
roaring64 bitmap so that scans stay in ascending state order.
*/

package distribution

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// store is the cell storage behind a Binary distribution
type store interface {
	get(state uint64) float64
	set(state uint64, p float64)
	// scan visits states in ascending order until fn returns false
	scan(fn func(state uint64, p float64) bool)
	// scale multiplies every stored cell by f
	scale(f float64)
	// stored is the number of cells held in memory
	stored() uint64
}

// denseStore holds every cell of the state space
type denseStore struct {
	cells []float64
}

func newDenseStore(size uint64) *denseStore {
	return &denseStore{cells: make([]float64, size)}
}

func (d *denseStore) get(state uint64) float64    { return d.cells[state] }
func (d *denseStore) set(state uint64, p float64) { d.cells[state] = p }
func (d *denseStore) stored() uint64              { return uint64(len(d.cells)) }

func (d *denseStore) scan(fn func(state uint64, p float64) bool) {
	for i, p := range d.cells {
		if !fn(uint64(i), p) {
			return
		}
	}
}

func (d *denseStore) scale(f float64) {
	for i := range d.cells {
		d.cells[i] *= f
	}
}

// sparseStore holds only cells with nonzero mass
type sparseStore struct {
	support *roaring64.Bitmap
	values  map[uint64]float64
}

func newSparseStore() *sparseStore {
	return &sparseStore{
		support: roaring64.New(),
		values:  make(map[uint64]float64),
	}
}

func (s *sparseStore) get(state uint64) float64 { return s.values[state] }
func (s *sparseStore) stored() uint64           { return s.support.GetCardinality() }

func (s *sparseStore) set(state uint64, p float64) {
	if p == 0 {
		s.support.Remove(state)
		delete(s.values, state)
		return
	}
	s.support.Add(state)
	s.values[state] = p
}

func (s *sparseStore) scan(fn func(state uint64, p float64) bool) {
	it := s.support.Iterator()
	for it.HasNext() {
		state := it.Next()
		if !fn(state, s.values[state]) {
			return
		}
	}
}

func (s *sparseStore) scale(f float64) {
	for state, p := range s.values {
		s.values[state] = p * f
	}
}
