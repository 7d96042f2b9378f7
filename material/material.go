package material

import (
	"fmt"
	"iter"
	"slices"

	"github.com/arloliu/endfx/internal/hash"
)

// ReactionTable holds the tabulated cross-section of one reaction.
//
// Energy and CrossSection are co-indexed and always have the same length. Values
// appear in file order.
type ReactionTable struct {
	ID           int
	Energy       []float64
	CrossSection []float64
}

// Len returns the number of (energy, cross-section) points.
func (t ReactionTable) Len() int {
	return len(t.Energy)
}

// Points iterates over the (energy, cross-section) pairs in file order.
func (t ReactionTable) Points() iter.Seq2[float64, float64] {
	return func(yield func(float64, float64) bool) {
		for i, e := range t.Energy {
			if !yield(e, t.CrossSection[i]) {
				return
			}
		}
	}
}

// Material is the immutable result of parsing one ENDF file.
//
// Reactions iterate in first-seen order. Slices returned by accessors are shared
// with the Material and must not be modified. A Material is safe for concurrent
// read access.
type Material struct {
	name   string
	order  []int
	tables map[int]ReactionTable
}

// New assembles a Material from tables, keeping their order.
//
// Returns an error if a reaction id repeats or a table's sequences differ in length.
func New(name string, tables ...ReactionTable) (*Material, error) {
	m := &Material{
		name:   name,
		order:  make([]int, 0, len(tables)),
		tables: make(map[int]ReactionTable, len(tables)),
	}
	for _, t := range tables {
		if _, exists := m.tables[t.ID]; exists {
			return nil, fmt.Errorf("duplicate reaction id %d", t.ID)
		}
		if len(t.Energy) != len(t.CrossSection) {
			return nil, fmt.Errorf("reaction %d: %d energies but %d cross-sections",
				t.ID, len(t.Energy), len(t.CrossSection))
		}
		m.order = append(m.order, t.ID)
		m.tables[t.ID] = t
	}

	return m, nil
}

// Name returns the normalized material identifier, or "" if none was extracted.
func (m *Material) Name() string {
	return m.name
}

// WithName returns a copy of m carrying name. Tables are shared.
func (m *Material) WithName(name string) *Material {
	return &Material{name: name, order: m.order, tables: m.tables}
}

// Len returns the number of reactions.
func (m *Material) Len() int {
	return len(m.order)
}

// IsEmpty reports whether the material has no reactions.
func (m *Material) IsEmpty() bool {
	return len(m.order) == 0
}

// ReactionIDs returns the reaction identifiers in first-seen order.
func (m *Material) ReactionIDs() []int {
	return slices.Clone(m.order)
}

// HasReaction reports whether a table exists for id.
func (m *Material) HasReaction(id int) bool {
	_, ok := m.tables[id]
	return ok
}

// Reaction returns the table for id.
func (m *Material) Reaction(id int) (ReactionTable, bool) {
	t, ok := m.tables[id]
	return t, ok
}

// All iterates over the reaction tables in first-seen order.
func (m *Material) All() iter.Seq2[int, ReactionTable] {
	return func(yield func(int, ReactionTable) bool) {
		for _, id := range m.order {
			if !yield(id, m.tables[id]) {
				return
			}
		}
	}
}

// PointCount returns the total number of points across all reactions.
func (m *Material) PointCount() int {
	n := 0
	for _, t := range m.tables {
		n += t.Len()
	}

	return n
}

// Subset returns a Material holding only the reactions whose id is in ids, in the
// original first-seen order. Unknown ids are ignored.
func (m *Material) Subset(ids []int) *Material {
	want := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	sub := &Material{name: m.name, tables: make(map[int]ReactionTable)}
	for _, id := range m.order {
		if _, ok := want[id]; ok {
			sub.order = append(sub.order, id)
			sub.tables[id] = m.tables[id]
		}
	}

	return sub
}

// Fingerprint returns an xxHash64 digest over the name, reaction order and the bit
// patterns of every value. Equal fingerprints mean the exported artifacts would be
// byte-identical.
func (m *Material) Fingerprint() uint64 {
	h := hash.NewHasher()
	h.WriteString(m.name)
	h.WriteInt(len(m.order))
	for _, id := range m.order {
		t := m.tables[id]
		h.WriteInt(id)
		h.WriteFloats(t.Energy)
		h.WriteFloats(t.CrossSection)
	}

	return h.Sum64()
}
