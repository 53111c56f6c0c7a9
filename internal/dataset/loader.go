// Package dataset locates, validates and decodes the spell and feature files.
//
// Files are matched by doublestar globs, read concurrently and validated
// against a JSON Schema before decoding. Every failure carries the offending
// path; nothing malformed reaches the catalog.
package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/grimoire/internal/catalog"
	"github.com/standardbeagle/grimoire/internal/debug"
	gerrors "github.com/standardbeagle/grimoire/internal/errors"
)

const (
	kindSpells   = "spells"
	kindFeatures = "features"
)

// Sources lists the glob patterns for each record kind.
type Sources struct {
	Spells   []string
	Features []string
}

// Dataset is a decoded, validated record set.
type Dataset struct {
	Spells   []*catalog.Spell
	Features []*catalog.Feature
	// Files holds every file that contributed records, spells first.
	Files []string
}

// Expand resolves patterns to a sorted, de-duplicated file list. A pattern
// without glob metacharacters must name an existing file.
func Expand(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		pattern = filepath.Clean(pattern)
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, gerrors.NewLoadError("glob", pattern, err)
		}
		if len(matches) == 0 && !hasMeta(pattern) {
			return nil, gerrors.NewLoadError("stat", pattern, os.ErrNotExist)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func hasMeta(pattern string) bool {
	for _, c := range pattern {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

type job struct {
	path string
	kind string
}

type fileResult struct {
	spells   []*catalog.Spell
	features []*catalog.Feature
}

// Load reads every file matched by src. Validation problems across all files
// are collected into one *errors.MultiError; I/O failures abort the load.
func Load(ctx context.Context, src Sources) (*Dataset, error) {
	spellFiles, err := Expand(src.Spells)
	if err != nil {
		return nil, err
	}
	featureFiles, err := Expand(src.Features)
	if err != nil {
		return nil, err
	}

	jobs := make([]job, 0, len(spellFiles)+len(featureFiles))
	for _, p := range spellFiles {
		jobs = append(jobs, job{p, kindSpells})
	}
	for _, p := range featureFiles {
		jobs = append(jobs, job{p, kindFeatures})
	}

	results := make([]fileResult, len(jobs))
	problems := make([]*gerrors.MultiError, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := readFile(j.path, j.kind)
			var multi *gerrors.MultiError
			if errors.As(err, &multi) {
				problems[i] = multi
				return nil
			}
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds := &Dataset{}
	var errs []error
	for i, p := range problems {
		if p != nil {
			errs = append(errs, p.Errors...)
			continue
		}
		ds.Spells = append(ds.Spells, results[i].spells...)
		ds.Features = append(ds.Features, results[i].features...)
		ds.Files = append(ds.Files, jobs[i].path)
	}
	errs = append(errs, duplicates(jobs, results)...)
	if err := gerrors.NewMultiError(errs).ErrOrNil(); err != nil {
		return nil, err
	}

	debug.Event("LOAD").
		Int("files", len(ds.Files)).
		Int("spells", len(ds.Spells)).
		Int("features", len(ds.Features)).
		Msg("dataset loaded")
	return ds, nil
}

func readFile(path, kind string) (fileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileResult{}, gerrors.NewLoadError("read", path, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fileResult{}, gerrors.NewMultiError([]error{
			gerrors.NewValidationError(path, -1, "expected a JSON array of records").WithCause(err),
		})
	}

	schema, err := schemaFor(kind)
	if err != nil {
		return fileResult{}, gerrors.NewLoadError("schema", path, err)
	}

	var res fileResult
	var errs []error
	for i, msg := range raw {
		var instance map[string]any
		if err := json.Unmarshal(msg, &instance); err != nil {
			errs = append(errs, gerrors.NewValidationError(path, i, "record is not an object").WithCause(err))
			continue
		}
		id, _ := instance["id"].(string)
		if err := schema.Validate(instance); err != nil {
			errs = append(errs, gerrors.NewValidationError(path, i, "schema").WithRecord(id).WithCause(err))
			continue
		}

		switch kind {
		case kindSpells:
			var s catalog.Spell
			if err := json.Unmarshal(msg, &s); err != nil {
				errs = append(errs, gerrors.NewValidationError(path, i, "decode").WithRecord(id).WithCause(err))
				continue
			}
			if s.Tags == nil {
				s.Tags = []string{}
			}
			if s.ClassNames == nil {
				s.ClassNames = []string{}
			}
			res.spells = append(res.spells, &s)
		case kindFeatures:
			var f catalog.Feature
			if err := json.Unmarshal(msg, &f); err != nil {
				errs = append(errs, gerrors.NewValidationError(path, i, "decode").WithRecord(id).WithCause(err))
				continue
			}
			if f.Tags == nil {
				f.Tags = []string{}
			}
			res.features = append(res.features, &f)
		}
	}
	if len(errs) > 0 {
		return fileResult{}, gerrors.NewMultiError(errs)
	}

	debug.LogLoad("%s: %d %s\n", path, len(raw), kind)
	return res, nil
}

// duplicates reports ids repeated within a kind, across all files.
func duplicates(jobs []job, results []fileResult) []error {
	var errs []error
	spellSeen := make(map[string]string)
	featureSeen := make(map[string]string)
	for i, j := range jobs {
		for n, s := range results[i].spells {
			if first, ok := spellSeen[s.ID]; ok {
				errs = append(errs, dupError(j.path, n, "spell", s.ID, first))
				continue
			}
			spellSeen[s.ID] = j.path
		}
		for n, f := range results[i].features {
			if first, ok := featureSeen[f.ID]; ok {
				errs = append(errs, dupError(j.path, n, "feature", f.ID, first))
				continue
			}
			featureSeen[f.ID] = j.path
		}
	}
	return errs
}

func dupError(path string, index int, kind, id, first string) error {
	return gerrors.NewValidationError(path, index,
		fmt.Sprintf("duplicate %s id %q (first defined in %s)", kind, id, first)).WithRecord(id)
}
