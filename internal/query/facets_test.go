package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/grimoire/internal/catalog"
	"github.com/standardbeagle/grimoire/internal/tags"
	"github.com/standardbeagle/grimoire/testhelpers"
)

func TestComputeFacetsSpells(t *testing.T) {
	records := testhelpers.SampleRecords()
	f := ComputeFacets(records, tags.BuildAssignment(records), catalog.KindSpell)

	assert.Equal(t, []int{0, 1, 2, 3}, f.Levels)
	assert.Equal(t, []string{"Bard", "Cleric", "Druid", "Paladin", "Sorcerer", "Warlock", "Wizard"}, f.Classes)

	require.NotEmpty(t, f.Schools)
	assert.Equal(t, "Abjuração", f.Schools[0].PT)
	assert.True(t, f.HasSchool("divination"))
	assert.False(t, f.HasSchool("necromancy"))

	assert.Equal(t, tags.SortKeys(f.Tags), f.Tags, "tags come out in catalog order")
	assert.True(t, f.HasTag(tags.Ritual))
	assert.False(t, f.HasTag(tags.LongRest))
}

func TestComputeFacetsFeatures(t *testing.T) {
	records := testhelpers.SampleRecords()
	f := ComputeFacets(records, tags.BuildAssignment(records), catalog.KindFeature)

	assert.Equal(t, []int{1, 2}, f.Levels)
	assert.Equal(t, []string{"Barbarian", "Cleric", "Fighter"}, f.Classes)
	assert.Empty(t, f.Schools)
	assert.True(t, f.HasTag(tags.LongRest))
	assert.True(t, f.HasClass("FIGHTER"))
}

func TestSuggest(t *testing.T) {
	records := testhelpers.SampleRecords()

	got := Suggest(records, catalog.KindSpell, "firebal", 3)
	require.NotEmpty(t, got)
	assert.Equal(t, "spell:fireball", got[0].Key)
	assert.LessOrEqual(t, len(got), 3)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}

	assert.Empty(t, Suggest(records, catalog.KindSpell, "zzzzqqq", 3))
	assert.Nil(t, Suggest(records, catalog.KindSpell, "  ", 3))
	assert.Nil(t, Suggest(records, catalog.KindSpell, "fire", 0))
}
