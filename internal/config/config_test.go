package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/grimoire/internal/catalog"
	gerrors "github.com/standardbeagle/grimoire/internal/errors"
	"github.com/standardbeagle/grimoire/testhelpers"
)

func TestValidate_CollectsEveryProblem(t *testing.T) {
	cfg := Default(t.TempDir())
	cfg.Search.PageSize = 0
	cfg.Search.Sort = "random"
	cfg.Search.Fuzzy = 2
	cfg.Search.Boost.NameEN = cfg.Search.Boost.NamePT
	cfg.Display.Lang = "fr"
	cfg.Dataset.DebounceMs = -1

	err := cfg.Validate()
	require.Error(t, err)

	var multi *gerrors.MultiError
	require.True(t, errors.As(err, &multi))
	assert.Len(t, multi.Errors, 6)

	fields := map[string]bool{}
	for _, e := range multi.Errors {
		var ce *gerrors.ConfigError
		require.True(t, errors.As(e, &ce))
		fields[ce.Field] = true
	}
	for _, f := range []string{"search.page_size", "search.sort", "search.fuzzy", "search.boost", "display.lang", "dataset.debounce_ms"} {
		assert.True(t, fields[f], "missing %s", f)
	}
}

func TestValidate_RequiresSomeDataset(t *testing.T) {
	cfg := Default(t.TempDir())
	cfg.Dataset.Spells = nil
	cfg.Dataset.Features = nil
	assert.Error(t, cfg.Validate())
}

func TestLoad_InvalidFileIsRejected(t *testing.T) {
	dir := t.TempDir()
	testhelpers.WriteFile(t, dir, KDLFileName, `search { page_size 1000; }`)

	_, err := Load(dir)
	var ce *gerrors.ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "search.page_size", ce.Field)
}

func TestApply_Overrides(t *testing.T) {
	cfg := Default("/srv/grimoire")
	cfg.Apply(Overrides{
		Spells:   []string{"/data/spells.json"},
		PageSize: 30,
		Sort:     "name-asc",
		Lang:     "en",
		Watch:    true,
	})

	assert.Equal(t, []string{"/data/spells.json"}, cfg.SpellGlobs())
	assert.Equal(t, []string{filepath.Join("/srv/grimoire", DefaultFeaturesGlob)}, cfg.FeatureGlobs())
	assert.Equal(t, 30, cfg.Search.PageSize)
	assert.Equal(t, "name-asc", cfg.Search.Sort)
	assert.Equal(t, catalog.LangEN, cfg.Lang())
	assert.True(t, cfg.Dataset.Watch)
}

func TestApply_ZeroOverridesChangeNothing(t *testing.T) {
	cfg := Default("/srv/grimoire")
	before := *cfg
	cfg.Apply(Overrides{})
	assert.Equal(t, before, *cfg)
}

func TestIndexOptions(t *testing.T) {
	cfg := Default(".")
	cfg.Search.Fuzzy = 0
	opts := cfg.IndexOptions()
	assert.Equal(t, 0.0, opts.Fuzzy)
	assert.True(t, opts.Prefix)
	assert.Equal(t, cfg.Search.Boost, opts.Weights)
}
