package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	gerrors "github.com/standardbeagle/grimoire/internal/errors"
)

// LoadTOML loads dir/grimoire.toml. It returns nil, nil when the file does
// not exist. Keys absent from the file keep their defaults.
func LoadTOML(dir string) (*Config, error) {
	path := filepath.Join(dir, TOMLFileName)
	if !fileExists(path) {
		return nil, nil
	}
	return loadTOMLFile(path)
}

func loadTOMLFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, gerrors.NewLoadError("read config", path, err)
	}

	cfg := Default(filepath.Dir(path))
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, gerrors.NewLoadError("parse config", path, err)
	}
	cfg.Source = path
	return cfg, nil
}
