package structure

import (
	"testing"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countKinds(root *domain.ScopeNode) map[domain.NodeKind]int {
	counts := map[domain.NodeKind]int{}
	root.Walk(func(n *domain.ScopeNode, _ int) {
		counts[n.Kind]++
	})
	return counts
}

func TestGenerate_AcmeTowers(t *testing.T) {
	c := Counts{Blocks: 2, Floors: 3, FlatsPerFloor: 4}
	root := Generate("Acme Towers", c)

	assert.Equal(t, "Acme Towers", root.Name)
	assert.Equal(t, domain.NodeProject, root.Kind)
	assert.True(t, root.IsRoot())

	kinds := countKinds(root)
	assert.Equal(t, 1, kinds[domain.NodeProject])
	assert.Equal(t, 2, kinds[domain.NodeBlock])
	assert.Equal(t, 6, kinds[domain.NodeFloor])
	assert.Equal(t, 24, kinds[domain.NodeFlat])
	assert.Equal(t, 24, c.FlatCount())
	assert.Equal(t, 33, c.NodeCount())
}

func TestGenerate_NamesAndParents(t *testing.T) {
	root := Generate("P", Counts{Blocks: 2, Floors: 2, FlatsPerFloor: 3})

	blocks := root.Children()
	require.Len(t, blocks, 2)
	assert.Equal(t, "A", blocks[0].Name)
	assert.Equal(t, "B", blocks[1].Name)

	for _, b := range blocks {
		assert.Same(t, root, b.Parent())
		floors := b.Children()
		require.Len(t, floors, 2)
		assert.Equal(t, "1. Floor", floors[0].Name)
		assert.Equal(t, "2. Floor", floors[1].Name)
		for _, f := range floors {
			assert.Equal(t, domain.NodeFloor, f.Kind)
			assert.Same(t, b, f.Parent())
			flats := f.Children()
			require.Len(t, flats, 3)
			for k, flat := range flats {
				assert.Equal(t, domain.NodeFlat, flat.Kind)
				assert.Same(t, f, flat.Parent())
				assert.Equal(t, []string{"Flat 1", "Flat 2", "Flat 3"}[k], flat.Name)
				assert.Zero(t, flat.ChildCount())
				assert.Empty(t, flat.Items())
			}
		}
	}
}

func TestGenerate_ClampsCountsToOne(t *testing.T) {
	root := Generate("Tiny", Counts{Blocks: 0, Floors: -2, FlatsPerFloor: 0})

	kinds := countKinds(root)
	assert.Equal(t, 1, kinds[domain.NodeBlock])
	assert.Equal(t, 1, kinds[domain.NodeFloor])
	assert.Equal(t, 1, kinds[domain.NodeFlat])
	assert.Equal(t, 4, Counts{}.NodeCount())
}

func TestGenerate_TurkishNaming(t *testing.T) {
	root := GenerateWithNaming("Site", Counts{Blocks: 1, Floors: 1, FlatsPerFloor: 2}, NamingForLocale("tr"))

	floor := root.Children()[0].Children()[0]
	assert.Equal(t, "1. Kat", floor.Name)
	assert.Equal(t, "Daire 2", floor.Children()[1].Name)
}

func TestNamingForLocale_DefaultsToEnglish(t *testing.T) {
	assert.Equal(t, EnglishNaming, NamingForLocale(""))
	assert.Equal(t, EnglishNaming, NamingForLocale("de"))
	assert.Equal(t, TurkishNaming, NamingForLocale("TR"))
}

func TestBlockLabel(t *testing.T) {
	cases := map[int]string{0: "A", 1: "B", 25: "Z", 26: "AA", 27: "AB", 51: "AZ", 52: "BA", 701: "ZZ", 702: "AAA"}
	for i, want := range cases {
		assert.Equal(t, want, BlockLabel(i), "index %d", i)
	}
}
