// Package query turns a record set, its search index and its tag assignment
// into a filtered, sorted and paginated result page.
//
// Search is a pure function of its inputs; the mutable part (what the user has
// selected) lives in State, which the caller owns.
package query

import (
	"strings"

	"github.com/standardbeagle/grimoire/internal/catalog"
	"github.com/standardbeagle/grimoire/internal/debug"
	"github.com/standardbeagle/grimoire/internal/index"
	"github.com/standardbeagle/grimoire/internal/tags"
	"github.com/standardbeagle/grimoire/internal/textnorm"
)

// Searcher is the full-text side of a search. *index.Index implements it.
type Searcher interface {
	Search(text string) ([]index.Hit, error)
}

// Result is one page of records plus the pre-pagination total.
type Result struct {
	Records []catalog.Record `json:"records"`
	Total   int              `json:"total"`
	Meta    Meta             `json:"meta"`
	// Exact reports that the exact-name tier replaced the fuzzy hit set.
	Exact bool `json:"exact,omitempty"`
}

// Search applies f to records. An empty query skips the index entirely; index
// failures are logged and yield no text matches rather than an error.
func Search(records []catalog.Record, idx Searcher, assignment tags.Assignment, f Filter) Result {
	params := f.params()

	candidates, exact := textCandidates(ofKind(records, f.Kind), idx, f)
	filtered := applyFacets(candidates, assignment, f)
	sortRecords(filtered, f.sortMode())

	debug.Event("SEARCH").
		Str("kind", string(f.Kind)).
		Str("query", f.Query).
		Int("candidates", len(candidates)).
		Int("total", len(filtered)).
		Bool("exact", exact).
		Msg("search")

	return Result{
		Records: paginate(filtered, params),
		Total:   len(filtered),
		Meta:    NewMeta(params.Page, params.PageSize, len(filtered)),
		Exact:   exact,
	}
}

func ofKind(records []catalog.Record, kind catalog.Kind) []catalog.Record {
	if kind == "" {
		out := make([]catalog.Record, len(records))
		copy(out, records)
		return out
	}
	out := make([]catalog.Record, 0, len(records))
	for _, r := range records {
		if r.Kind() == kind {
			out = append(out, r)
		}
	}
	return out
}

// textCandidates narrows pool by the free-text query. It reports whether the
// exact-name tier was used.
func textCandidates(pool []catalog.Record, idx Searcher, f Filter) ([]catalog.Record, bool) {
	q := strings.TrimSpace(f.Query)
	if q == "" {
		return pool, false
	}
	if idx == nil {
		debug.LogSearch("no index available for query %q\n", q)
		return nil, false
	}

	hits, err := idx.Search(q)
	if err != nil {
		debug.LogSearch("index search failed for %q: %v\n", q, err)
		return nil, false
	}

	byKey := make(map[string]catalog.Record, len(pool))
	for _, r := range pool {
		byKey[r.Key()] = r
	}

	fuzzy := make([]catalog.Record, 0, len(hits))
	seen := make(map[string]bool, len(hits))
	for _, h := range hits {
		if f.Kind != "" && h.Kind != f.Kind {
			continue
		}
		r, ok := byKey[h.Key]
		if !ok || seen[h.Key] {
			continue
		}
		seen[h.Key] = true
		fuzzy = append(fuzzy, r)
	}

	if exact := ExactNameMatches(fuzzy, q); len(exact) > 0 {
		return exact, true
	}
	return fuzzy, false
}

// ExactNameMatches returns the records whose normalized PT or EN name contains
// the whole normalized query, or every query token for multi-word queries.
func ExactNameMatches(records []catalog.Record, q string) []catalog.Record {
	needle := textnorm.Key(q)
	if needle == "" {
		return nil
	}
	tokens := textnorm.Tokens(q)

	var out []catalog.Record
	for _, r := range records {
		if nameMatches(r.DisplayName(), needle, tokens) {
			out = append(out, r)
		}
	}
	return out
}

func nameMatches(name catalog.LangString, needle string, tokens []string) bool {
	for _, n := range []string{name.PT, name.EN} {
		key := textnorm.Key(n)
		if key == "" {
			continue
		}
		if strings.Contains(key, needle) {
			return true
		}
		if len(tokens) > 1 && textnorm.ContainsAll(key, tokens) {
			return true
		}
	}
	return false
}

func applyFacets(pool []catalog.Record, assignment tags.Assignment, f Filter) []catalog.Record {
	levels := make(map[int]bool, len(f.Levels))
	for _, l := range f.Levels {
		levels[l] = true
	}
	class := textnorm.Key(f.Class)
	school := textnorm.Key(f.School)

	out := make([]catalog.Record, 0, len(pool))
	for _, r := range pool {
		if len(levels) > 0 && !levels[r.RecordLevel()] {
			continue
		}
		if class != "" && !hasClass(r, class) {
			continue
		}
		if school != "" && r.Kind() == catalog.KindSpell && !schoolIs(r.School(), school) {
			continue
		}
		if !assignment.HasAll(r.Key(), f.Tags) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func hasClass(r catalog.Record, class string) bool {
	for _, c := range r.Classes() {
		if textnorm.Key(c) == class {
			return true
		}
	}
	return false
}

func schoolIs(s catalog.LangString, school string) bool {
	return textnorm.Key(s.PT) == school || textnorm.Key(s.EN) == school
}
