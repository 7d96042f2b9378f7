package spectrum

import (
	"iter"
	"slices"

	"github.com/arloliu/endfx/internal/pool"
	"github.com/arloliu/endfx/material"
)

// Spectrum is a cross-section curve on a strictly increasing energy grid.
//
// Energy and CrossSection are index-aligned. A Spectrum does not reference the
// material it was derived from.
type Spectrum struct {
	Energy       []float64
	CrossSection []float64
}

// Len returns the number of grid points.
func (s Spectrum) Len() int {
	return len(s.Energy)
}

// IsEmpty reports whether the spectrum has no grid points, which is the result of
// aggregating a reaction set that matched nothing.
func (s Spectrum) IsEmpty() bool {
	return len(s.Energy) == 0
}

// Points iterates over (energy, cross-section) pairs in ascending energy order.
func (s Spectrum) Points() iter.Seq2[float64, float64] {
	return func(yield func(float64, float64) bool) {
		for i, e := range s.Energy {
			if !yield(e, s.CrossSection[i]) {
				return
			}
		}
	}
}

// At evaluates the spectrum at energy by linear interpolation, returning 0 outside
// the grid.
func (s Spectrum) At(energy float64) float64 {
	return evaluate(energy, s.Energy, s.CrossSection, 0, 0)
}

// Aggregate sums the reactions of m whose identifier is in ids onto their union
// energy grid.
//
// Tables are combined in the material's first-seen order. If no reaction matches,
// the result is an empty Spectrum; callers decide whether that deserves a warning.
//
// Parameters:
//   - m: The material holding the reaction tables
//   - ids: The reaction ids to sum
//
// Returns:
//   - Spectrum: The summed cross section, zero outside each table's range.
func Aggregate(m *material.Material, ids []int) Spectrum {
	want := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	var selected []material.ReactionTable
	for id, table := range m.All() {
		if _, ok := want[id]; ok {
			selected = append(selected, table)
		}
	}

	return AggregateTables(selected...)
}

// AggregateTables sums the given tables onto the union of their energies.
func AggregateTables(tables ...material.ReactionTable) Spectrum {
	grid := UnionGrid(tables...)
	if len(grid) == 0 {
		return Spectrum{}
	}

	xs := make([]float64, len(grid))
	for _, t := range tables {
		accumulate(xs, grid, t.Energy, t.CrossSection)
	}

	return Spectrum{Energy: grid, CrossSection: xs}
}

// UnionGrid returns the sorted, de-duplicated union of the tables' energies.
func UnionGrid(tables ...material.ReactionTable) []float64 {
	total := 0
	for _, t := range tables {
		total += len(t.Energy)
	}
	if total == 0 {
		return nil
	}

	scratch, cleanup := pool.GetFloat64Slice(total)
	defer cleanup()

	scratch = scratch[:0]
	for _, t := range tables {
		scratch = append(scratch, t.Energy...)
	}
	slices.Sort(scratch)

	return slices.Clone(slices.Compact(scratch))
}
