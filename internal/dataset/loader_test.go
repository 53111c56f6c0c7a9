package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/standardbeagle/grimoire/internal/errors"
	"github.com/standardbeagle/grimoire/testhelpers"
)

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	spells := testhelpers.SampleSpells()
	testhelpers.WriteJSON(t, dir, "spells/core.json", spells[:5])
	testhelpers.WriteJSON(t, dir, "spells/extra/more.json", spells[5:])
	testhelpers.WriteJSON(t, dir, "features.json", testhelpers.SampleFeatures())
	return dir
}

func TestLoad_Globs(t *testing.T) {
	dir := writeSample(t)

	ds, err := Load(context.Background(), Sources{
		Spells:   []string{filepath.Join(dir, "spells", "**", "*.json")},
		Features: []string{filepath.Join(dir, "features.json")},
	})
	require.NoError(t, err)

	assert.Len(t, ds.Spells, len(testhelpers.SampleSpells()))
	assert.Len(t, ds.Features, len(testhelpers.SampleFeatures()))
	assert.Len(t, ds.Files, 3)
	assert.Equal(t, "fire-bolt", ds.Spells[0].ID, "files are read in sorted path order")
}

func TestLoad_DefaultsApplied(t *testing.T) {
	dir := t.TempDir()
	path := testhelpers.WriteFile(t, dir, "features.json", `[{
		"id": "extra-attack",
		"name": {"pt": "Ataque Extra", "en": "Extra Attack"},
		"class": "Fighter",
		"level": 5,
		"text": {"pt": "Você ataca duas vezes.", "en": "You can attack twice."},
		"source": {"name": "SRD 5.1"}
	}]`)

	ds, err := Load(context.Background(), Sources{Features: []string{path}})
	require.NoError(t, err)
	require.Len(t, ds.Features, 1)
	assert.NotNil(t, ds.Features[0].Tags)
	assert.Empty(t, ds.Features[0].Tags)
	assert.Nil(t, ds.Features[0].Action)
}

func TestLoad_SchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad id", `[{"id":"Bad Id","name":{"pt":"a","en":"a"},"class":"Fighter","level":1,"text":{"pt":"a","en":"a"},"source":{"name":"x"}}]`},
		{"level out of range", `[{"id":"a","name":{"pt":"a","en":"a"},"class":"Fighter","level":21,"text":{"pt":"a","en":"a"},"source":{"name":"x"}}]`},
		{"empty lang half", `[{"id":"a","name":{"pt":"","en":"a"},"class":"Fighter","level":1,"text":{"pt":"a","en":"a"},"source":{"name":"x"}}]`},
		{"missing text", `[{"id":"a","name":{"pt":"a","en":"a"},"class":"Fighter","level":1,"source":{"name":"x"}}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testhelpers.WriteFile(t, t.TempDir(), "features.json", tt.content)

			_, err := Load(context.Background(), Sources{Features: []string{path}})
			require.Error(t, err)

			var verr *gerrors.ValidationError
			require.True(t, errors.As(err, &verr), "got %T: %v", err, err)
			assert.Equal(t, path, verr.Path)
			assert.Equal(t, 0, verr.Index)
		})
	}
}

func TestLoad_NotAnArray(t *testing.T) {
	path := testhelpers.WriteFile(t, t.TempDir(), "spells.json", `{"id": "x"}`)

	_, err := Load(context.Background(), Sources{Spells: []string{path}})
	var verr *gerrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, -1, verr.Index)
}

func TestLoad_DuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	spells := testhelpers.SampleSpells()
	testhelpers.WriteJSON(t, dir, "a.json", spells[:2])
	second := testhelpers.WriteJSON(t, dir, "b.json", spells[1:3])

	_, err := Load(context.Background(), Sources{Spells: []string{filepath.Join(dir, "*.json")}})
	var verr *gerrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, second, verr.Path)
	assert.Equal(t, spells[1].ID, verr.RecordID)
	assert.Contains(t, verr.Detail, "duplicate")
}

func TestLoad_SameIDAcrossKindsIsFine(t *testing.T) {
	dir := t.TempDir()
	sp := testhelpers.WriteJSON(t, dir, "spells.json", testhelpers.SampleSpells()[:1])
	f := testhelpers.NewFeature("fire-bolt").Build()
	fp := testhelpers.WriteJSON(t, dir, "features.json", []interface{}{f})

	ds, err := Load(context.Background(), Sources{Spells: []string{sp}, Features: []string{fp}})
	require.NoError(t, err)
	assert.Len(t, ds.Spells, 1)
	assert.Len(t, ds.Features, 1)
}

func TestLoad_MissingLiteralPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.json")

	_, err := Load(context.Background(), Sources{Spells: []string{missing}})
	var lerr *gerrors.LoadError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, missing, lerr.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_EmptyGlobIsEmptyDataset(t *testing.T) {
	ds, err := Load(context.Background(), Sources{Spells: []string{filepath.Join(t.TempDir(), "*.json")}})
	require.NoError(t, err)
	assert.Empty(t, ds.Spells)
	assert.Empty(t, ds.Files)
}

func TestExpand_Dedup(t *testing.T) {
	dir := writeSample(t)
	p := filepath.Join(dir, "features.json")

	files, err := Expand([]string{p, filepath.Join(dir, "*.json")})
	require.NoError(t, err)
	assert.Equal(t, []string{p}, files)
}

func TestSchemas_Resolve(t *testing.T) {
	for _, kind := range []string{kindSpells, kindFeatures} {
		r, err := schemaFor(kind)
		require.NoError(t, err)
		assert.NotNil(t, r)
	}
}
