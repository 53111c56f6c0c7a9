package index

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/grimoire/internal/catalog"
	"github.com/standardbeagle/grimoire/internal/semantic"
	"github.com/standardbeagle/grimoire/internal/tags"
	"github.com/standardbeagle/grimoire/testhelpers"
)

func buildSample(t *testing.T, records []catalog.Record) *Index {
	t.Helper()
	docs := ToDocuments(records, tags.BuildAssignment(records), semantic.NewStemmer(3))
	ix, err := Build(docs, DefaultOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = ix.Close() })
	return ix
}

func keys(hits []Hit) []string {
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.Key
	}
	return out
}

func TestFuzziness(t *testing.T) {
	tests := []struct {
		term   string
		factor float64
		want   int
	}{
		{"a", 0.2, 0},
		{"cura", 0.2, 1},
		{"fireball", 0.2, 2},
		{"conjuration", 0.2, 2},
		{"fireball", 0, 0},
		{"ação", 0.2, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Fuzziness(tt.term, tt.factor), "%s@%g", tt.term, tt.factor)
	}
}

func TestWeightsValidate(t *testing.T) {
	require.NoError(t, DefaultWeights().Validate())

	w := DefaultWeights()
	w.NameEN = w.NamePT
	assert.Error(t, w.Validate(), "secondary name must not tie primary")

	w = DefaultWeights()
	w.BodyEN = 3
	assert.Error(t, w.Validate(), "body must stay below names")

	w = DefaultWeights()
	w.Keywords = 2
	assert.Error(t, w.Validate(), "keywords must stay below body")

	w = DefaultWeights()
	w.Classes = 0
	assert.Error(t, w.Validate())
}

func TestBuildRejectsInvalidWeights(t *testing.T) {
	opts := DefaultOptions()
	opts.Weights.NamePT = 1
	_, err := Build(nil, opts)
	assert.Error(t, err)
}

func TestNewDocumentNormalizes(t *testing.T) {
	s := testhelpers.NewSpell("cure").Named("Curar Ferimentos", "Cure Wounds").
		Classes("Clérigo", "Druid").Text("**Cura** _rápida_", "Heals").Build()

	d := NewDocument(s, []tags.TagKey{tags.Healing}, semantic.NewStemmer(3))

	assert.Equal(t, "spell:cure", d.Key)
	assert.Equal(t, catalog.KindSpell, d.Kind)
	assert.Equal(t, "curar ferimentos", d.NamePT)
	assert.Equal(t, []string{"cura", "rapida"}, strings.Fields(d.BodyPT))
	assert.Equal(t, []string{"clerigo", "druid"}, d.Classes)
	assert.Contains(t, d.Keywords, "cura")
	assert.Contains(t, d.Keywords, "healing")
	assert.Contains(t, d.Keywords, "wound")
}

func TestSearchAccentInsensitive(t *testing.T) {
	records := []catalog.Record{
		testhelpers.NewSpell("cura-ferimentos").Named("Cura Ferimentos", "Cure Wounds").Build(),
		testhelpers.NewSpell("cura-accent").Named("Cúra Menor", "Lesser Cure").Build(),
		testhelpers.NewSpell("shield").Named("Escudo", "Shield").Build(),
	}
	ix := buildSample(t, records)

	for _, q := range []string{"cura", "CURA", "cúra"} {
		hits, err := ix.Search(q)
		require.NoError(t, err)
		got := keys(hits)
		assert.Contains(t, got, "spell:cura-ferimentos", q)
		assert.Contains(t, got, "spell:cura-accent", q)
		assert.NotContains(t, got, "spell:shield", q)
	}
}

func TestSearchPrefixAndFuzzy(t *testing.T) {
	ix := buildSample(t, testhelpers.SampleRecords())

	hits, err := ix.Search("firebal")
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "spell:fireball", hits[0].Key)

	hits, err = ix.Search("fire")
	require.NoError(t, err)
	got := keys(hits)
	assert.Contains(t, got, "spell:fireball")
	assert.Contains(t, got, "spell:fire-bolt")
}

func TestSearchFieldWeights(t *testing.T) {
	records := []catalog.Record{
		testhelpers.NewSpell("in-body").Named("Escudo", "Shield").
			Text("Uma barreira de luz protege voce.", "A barrier of light protects you.").Build(),
		testhelpers.NewSpell("in-name-en").Named("Clarao", "Light").Text("x", "x").Build(),
		testhelpers.NewSpell("in-name-pt").Named("Luz", "Daylight").Text("y", "y").Build(),
	}
	ix := buildSample(t, records)

	hits, err := ix.Search("luz")
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "spell:in-name-pt", hits[0].Key)

	hits, err = ix.Search("light")
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "spell:in-name-en", hits[0].Key)
}

func TestSearchEmptyQuery(t *testing.T) {
	ix := buildSample(t, testhelpers.SampleRecords())
	for _, q := range []string{"", "   ", "!!"} {
		hits, err := ix.Search(q)
		assert.NoError(t, err)
		assert.Empty(t, hits)
	}
}

func TestSearchSharesIndexAcrossKinds(t *testing.T) {
	ix := buildSample(t, testhelpers.SampleRecords())

	hits, err := ix.Search("surge")
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, catalog.KindFeature, hits[0].Kind)
	assert.Equal(t, "action-surge", hits[0].ID)
}

func TestDocumentsAndDuplicates(t *testing.T) {
	a := Document{Key: "spell:a", Kind: catalog.KindSpell, ID: "a", NamePT: "primeiro"}
	dup := Document{Key: "spell:a", Kind: catalog.KindSpell, ID: "a", NamePT: "segundo"}
	b := Document{Key: "feature:a", Kind: catalog.KindFeature, ID: "a", NamePT: "terceiro"}

	ix, err := Build([]Document{a, dup, b}, DefaultOptions())
	require.NoError(t, err)
	defer ix.Close()

	assert.Equal(t, 2, ix.Len())
	d, ok := ix.Document("spell:a")
	require.True(t, ok)
	assert.Equal(t, "primeiro", d.NamePT)

	docs := ix.Documents()
	docs[0].NamePT = "mutated"
	d, _ = ix.Document("spell:a")
	assert.Equal(t, "primeiro", d.NamePT)

	_, ok = ix.Document("spell:missing")
	assert.False(t, ok)
}
