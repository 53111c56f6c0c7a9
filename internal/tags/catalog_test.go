package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/grimoire/internal/catalog"
)

func TestOrderCoversCatalog(t *testing.T) {
	ord := Order()
	cat := Catalog()

	require.Len(t, ord, 42)
	assert.Len(t, cat, len(ord))

	seen := make(map[TagKey]bool, len(ord))
	for _, k := range ord {
		assert.False(t, seen[k], "duplicate key %s", k)
		seen[k] = true

		l, ok := cat[k]
		require.True(t, ok, "missing label for %s", k)
		assert.NotEmpty(t, l.PT)
		assert.NotEmpty(t, l.EN)
	}
}

func TestOrderReturnsCopy(t *testing.T) {
	ord := Order()
	ord[0] = "mutated"
	assert.Equal(t, Healing, Order()[0])
}

func TestTimingMarkersFollowConcentration(t *testing.T) {
	ord := Order()
	var at int
	for i, k := range ord {
		if k == Concentration {
			at = i
		}
	}
	assert.Equal(t, []TagKey{Action, BonusAction, Reaction}, ord[at+1:at+4])
}

func TestLabelIn(t *testing.T) {
	l, ok := LabelOf(BonusAction)
	require.True(t, ok)
	assert.Equal(t, "Ação Bônus", l.In(catalog.LangPT))
	assert.Equal(t, "Bonus Action", l.In(catalog.LangEN))

	_, ok = LabelOf("nonsense")
	assert.False(t, ok)
}

func TestSetOrderedUsesCatalogOrder(t *testing.T) {
	s := Set{}
	s.Add(Warding)
	s.Add(Ritual)
	s.Add(Healing)
	s.Add("not-a-tag")

	assert.Equal(t, []TagKey{Healing, Ritual, Warding}, s.Ordered())
}

func TestSortKeys(t *testing.T) {
	got := SortKeys([]TagKey{Utility, Damage, Utility, "bogus", Buff})
	assert.Equal(t, []TagKey{Damage, Buff, Utility}, got)
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want TagKey
		ok   bool
	}{
		{"short-rest", ShortRest, true},
		{"Descanso Curto", ShortRest, true},
		{"Ação Bônus", BonusAction, true},
		{"PROTEÇÃO", Warding, true},
		{"explosão de recursos", ResourceBurst, true},
		{"fireball", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Parse(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
