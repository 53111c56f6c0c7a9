// Package pathutil renders dataset file paths for people.
//
// grimoire resolves every dataset path to an absolute one so globs, watch
// events and error messages agree on a single spelling. Output meant for a
// terminal or an MCP client shows them relative to the config root instead.
package pathutil

import (
	"path/filepath"
	"strings"
)

// ToRelative converts an absolute path to one relative to rootDir.
// Paths that are already relative, or that lie outside rootDir, come back
// unchanged.
//
// Examples:
//   - ToRelative("/srv/grimoire/data/spells/srd.json", "/srv/grimoire") → "data/spells/srd.json"
//   - ToRelative("/home/me/homebrew.json", "/srv/grimoire") → "/home/me/homebrew.json"
func ToRelative(absPath, rootDir string) string {
	if absPath == "" || rootDir == "" {
		return absPath
	}
	if !filepath.IsAbs(absPath) {
		return absPath
	}

	absPath = filepath.Clean(absPath)
	rootDir = filepath.Clean(rootDir)

	relPath, err := filepath.Rel(rootDir, absPath)
	if err != nil {
		return absPath
	}
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return absPath
	}
	return relPath
}

// ToRelativeAll converts every path with ToRelative into a new slice.
func ToRelativeAll(paths []string, rootDir string) []string {
	if len(paths) == 0 {
		return paths
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = ToRelative(p, rootDir)
	}
	return out
}
