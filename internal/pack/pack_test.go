package pack

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/grimoire/internal/catalog"
	"github.com/standardbeagle/grimoire/testhelpers"
)

func spell(id string) Item   { return Item{Kind: catalog.KindSpell, ID: id} }
func feature(id string) Item { return Item{Kind: catalog.KindFeature, ID: id} }

func TestStore_AddIgnoresDuplicates(t *testing.T) {
	s := New()

	assert.True(t, s.Add(spell("fireball")))
	assert.False(t, s.Add(spell("fireball")))
	assert.True(t, s.Add(feature("fireball")), "same id under another kind is a different item")
	assert.Equal(t, 2, s.Len())
}

func TestStore_RemoveKeepsOrder(t *testing.T) {
	s := New()
	s.Add(spell("a"))
	s.Add(spell("b"))
	s.Add(spell("c"))

	assert.True(t, s.Remove(spell("b")))
	assert.False(t, s.Remove(spell("b")))
	assert.Equal(t, []Item{spell("a"), spell("c")}, s.Items())
	assert.False(t, s.IsSelected(spell("b")))
}

func TestStore_ToggleAndClear(t *testing.T) {
	s := New()

	assert.True(t, s.Toggle(spell("bless")))
	assert.True(t, s.IsSelected(spell("bless")))
	assert.False(t, s.Toggle(spell("bless")))
	assert.Equal(t, 0, s.Len())

	s.Add(spell("bless"))
	s.Add(feature("rage"))
	s.Clear()
	assert.Empty(t, s.Items())
	assert.True(t, s.Add(spell("bless")))
}

func TestStore_Resolve(t *testing.T) {
	s := New()
	s.Add(feature("rage"))
	s.Add(spell("gone"))
	s.Add(spell("fireball"))

	got := s.Resolve(testhelpers.SampleSpells(), testhelpers.SampleFeatures())
	if assert.Len(t, got, 2) {
		assert.Equal(t, "feature:rage", got[0].Key())
		assert.Equal(t, "spell:fireball", got[1].Key())
	}
}

func TestStore_ItemsIsACopy(t *testing.T) {
	s := New()
	s.Add(spell("a"))
	items := s.Items()
	items[0] = spell("z")
	assert.Equal(t, spell("a"), s.Items()[0])
}

func TestStore_Concurrent(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add(spell("shared"))
			_ = s.IsSelected(spell("shared"))
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, s.Len())
}

func TestItemOf(t *testing.T) {
	r := testhelpers.SampleSpells()[0]
	assert.Equal(t, spell(r.ID), ItemOf(r))
	assert.Equal(t, r.Key(), ItemOf(r).Key())
}
