// Package config loads grimoire settings from .grimoire.kdl or grimoire.toml.
package config

import (
	"os"
	"path/filepath"

	"github.com/standardbeagle/grimoire/internal/catalog"
	"github.com/standardbeagle/grimoire/internal/index"
	"github.com/standardbeagle/grimoire/internal/query"
)

const (
	KDLFileName  = ".grimoire.kdl"
	TOMLFileName = "grimoire.toml"
)

// Default dataset locations, relative to the config root.
const (
	DefaultSpellsGlob   = "data/spells/**/*.json"
	DefaultFeaturesGlob = "data/features/**/*.json"
	DefaultDebounceMs   = 200
)

type Config struct {
	// Root is the directory relative dataset globs resolve against.
	Root string `toml:"-"`
	// Source is the file the settings came from; empty for defaults.
	Source  string  `toml:"-"`
	Dataset Dataset `toml:"dataset"`
	Search  Search  `toml:"search"`
	Display Display `toml:"display"`
}

type Dataset struct {
	Spells     []string `toml:"spells"`
	Features   []string `toml:"features"`
	Watch      bool     `toml:"watch"`
	DebounceMs int      `toml:"debounce_ms"`
}

type Search struct {
	PageSize int           `toml:"page_size"`
	Sort     string        `toml:"sort"`
	Fuzzy    float64       `toml:"fuzzy"`
	Prefix   bool          `toml:"prefix"`
	Boost    index.Weights `toml:"boost"`
}

type Display struct {
	Lang string `toml:"lang"`
}

// Default returns the stock settings rooted at root.
func Default(root string) *Config {
	return &Config{
		Root: absOrSelf(root),
		Dataset: Dataset{
			Spells:     []string{DefaultSpellsGlob},
			Features:   []string{DefaultFeaturesGlob},
			DebounceMs: DefaultDebounceMs,
		},
		Search: Search{
			PageSize: query.DefaultPageSize,
			Sort:     string(query.DefaultSort),
			Fuzzy:    index.DefaultFuzziness,
			Prefix:   true,
			Boost:    index.DefaultWeights(),
		},
		Display: Display{Lang: string(catalog.LangPT)},
	}
}

// Load reads dir/.grimoire.kdl, falling back to dir/grimoire.toml and then to
// defaults. The result is validated.
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = "."
	}

	cfg, err := LoadKDL(dir)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		if cfg, err = LoadTOML(dir); err != nil {
			return nil, err
		}
	}
	if cfg == nil {
		cfg = Default(dir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads an explicit config file, choosing the parser by extension.
func LoadFile(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if filepath.Ext(path) == ".toml" {
		cfg, err = loadTOMLFile(path)
	} else {
		cfg, err = loadKDLFile(path)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overrides carries command-line values. Zero fields leave the config alone.
type Overrides struct {
	Spells   []string
	Features []string
	PageSize int
	Sort     string
	Lang     string
	Watch    bool
}

// Apply merges o into c. Globs given on the command line are taken relative
// to the working directory, not the config root.
func (c *Config) Apply(o Overrides) {
	if len(o.Spells) > 0 {
		c.Dataset.Spells = absAll(o.Spells)
	}
	if len(o.Features) > 0 {
		c.Dataset.Features = absAll(o.Features)
	}
	if o.PageSize > 0 {
		c.Search.PageSize = o.PageSize
	}
	if o.Sort != "" {
		c.Search.Sort = o.Sort
	}
	if o.Lang != "" {
		c.Display.Lang = o.Lang
	}
	if o.Watch {
		c.Dataset.Watch = true
	}
}

// SpellGlobs returns the spell patterns resolved against Root.
func (c *Config) SpellGlobs() []string { return c.resolve(c.Dataset.Spells) }

// FeatureGlobs returns the feature patterns resolved against Root.
func (c *Config) FeatureGlobs() []string { return c.resolve(c.Dataset.Features) }

func (c *Config) resolve(patterns []string) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		if filepath.IsAbs(p) || c.Root == "" {
			out[i] = p
			continue
		}
		out[i] = filepath.Join(c.Root, p)
	}
	return out
}

// IndexOptions converts the search section into index options.
func (c *Config) IndexOptions() index.Options {
	return index.Options{
		Weights: c.Search.Boost,
		Fuzzy:   c.Search.Fuzzy,
		Prefix:  c.Search.Prefix,
	}
}

// Lang returns the display language.
func (c *Config) Lang() catalog.Lang { return catalog.ParseLang(c.Display.Lang) }

func absOrSelf(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func absAll(ps []string) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = absOrSelf(p)
	}
	return out
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
