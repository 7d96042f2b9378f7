package material

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleMaterial(t *testing.T) *Material {
	t.Helper()

	m, err := New("h-1",
		ReactionTable{ID: 2, Energy: []float64{1, 3}, CrossSection: []float64{10, 30}},
		ReactionTable{ID: 102, Energy: []float64{2, 4}, CrossSection: []float64{5, 15}},
		ReactionTable{ID: 1, Energy: []float64{1}, CrossSection: []float64{40}},
	)
	require.NoError(t, err)

	return m
}

func TestNew(t *testing.T) {
	m := sampleMaterial(t)
	require.Equal(t, "h-1", m.Name())
	require.Equal(t, 3, m.Len())
	require.False(t, m.IsEmpty())
	require.Equal(t, []int{2, 102, 1}, m.ReactionIDs(), "insertion order preserved")
	require.Equal(t, 5, m.PointCount())
	require.True(t, m.HasReaction(102))
	require.False(t, m.HasReaction(103))

	_, ok := m.Reaction(103)
	require.False(t, ok)
}

func TestNew_Invalid(t *testing.T) {
	_, err := New("x",
		ReactionTable{ID: 2, Energy: []float64{1}, CrossSection: []float64{1}},
		ReactionTable{ID: 2, Energy: []float64{1}, CrossSection: []float64{1}},
	)
	require.ErrorContains(t, err, "duplicate reaction id 2")

	_, err = New("x", ReactionTable{ID: 2, Energy: []float64{1, 2}, CrossSection: []float64{1}})
	require.ErrorContains(t, err, "2 energies but 1 cross-sections")
}

func TestMaterial_ReactionIDsIsCopy(t *testing.T) {
	m := sampleMaterial(t)
	ids := m.ReactionIDs()
	ids[0] = 999
	require.Equal(t, []int{2, 102, 1}, m.ReactionIDs())
}

func TestMaterial_All(t *testing.T) {
	m := sampleMaterial(t)

	var ids []int
	for id, table := range m.All() {
		require.Equal(t, id, table.ID)
		ids = append(ids, id)
	}
	require.Equal(t, []int{2, 102, 1}, ids)

	// early break
	count := 0
	for range m.All() {
		count++
		break
	}
	require.Equal(t, 1, count)
}

func TestReactionTable_Points(t *testing.T) {
	table := ReactionTable{ID: 2, Energy: []float64{1, 3}, CrossSection: []float64{10, 30}}
	require.Equal(t, 2, table.Len())

	var pairs [][2]float64
	for e, xs := range table.Points() {
		pairs = append(pairs, [2]float64{e, xs})
	}
	require.Equal(t, [][2]float64{{1, 10}, {3, 30}}, pairs)
}

func TestMaterial_Subset(t *testing.T) {
	m := sampleMaterial(t)

	sub := m.Subset([]int{1, 2, 777})
	require.Equal(t, []int{2, 1}, sub.ReactionIDs(), "material order, not request order")
	require.Equal(t, "h-1", sub.Name())

	empty := m.Subset(nil)
	require.True(t, empty.IsEmpty())
}

func TestMaterial_WithName(t *testing.T) {
	m := sampleMaterial(t)
	renamed := m.WithName("u-235")
	require.Equal(t, "u-235", renamed.Name())
	require.Equal(t, "h-1", m.Name())
	require.Equal(t, m.ReactionIDs(), renamed.ReactionIDs())
}

func TestMaterial_Fingerprint(t *testing.T) {
	a := sampleMaterial(t)
	b := sampleMaterial(t)
	require.Equal(t, a.Fingerprint(), b.Fingerprint())

	require.NotEqual(t, a.Fingerprint(), a.WithName("other").Fingerprint())
	require.NotEqual(t, a.Fingerprint(), a.Subset([]int{2, 102}).Fingerprint())

	c, err := New("h-1",
		ReactionTable{ID: 2, Energy: []float64{1, 3}, CrossSection: []float64{10, 30.000001}},
		ReactionTable{ID: 102, Energy: []float64{2, 4}, CrossSection: []float64{5, 15}},
		ReactionTable{ID: 1, Energy: []float64{1}, CrossSection: []float64{40}},
	)
	require.NoError(t, err)
	require.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}
