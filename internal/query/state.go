package query

import (
	"sort"
	"strings"

	"github.com/standardbeagle/grimoire/internal/catalog"
	"github.com/standardbeagle/grimoire/internal/tags"
)

// FacetName identifies one filter dimension for ClearFacet.
type FacetName string

const (
	FacetQuery  FacetName = "query"
	FacetLevel  FacetName = "level"
	FacetClass  FacetName = "class"
	FacetSchool FacetName = "school"
	FacetTags   FacetName = "tags"
)

// State is the caller-held filter state. It changes only through its setters;
// every setter except SetPage and SetPageSize sends the user back to page 1.
// State is not safe for concurrent use.
type State struct {
	f Filter
}

// NewState returns the initial state for kind.
func NewState(kind catalog.Kind) *State {
	return &State{f: Filter{
		Kind:     kind,
		Sort:     DefaultSort,
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}}
}

// Filter returns a snapshot for Search. The snapshot shares nothing with s.
func (s *State) Filter() Filter {
	out := s.f
	out.Levels = append([]int(nil), s.f.Levels...)
	out.Tags = append([]tags.TagKey(nil), s.f.Tags...)
	return out
}

func (s *State) resetPage() { s.f.Page = DefaultPage }

// SetKind switches the record kind being browsed. Schools only exist for
// spells, so leaving the spell tab clears the school.
func (s *State) SetKind(kind catalog.Kind) {
	s.f.Kind = kind
	if kind != catalog.KindSpell {
		s.f.School = ""
	}
	s.resetPage()
}

func (s *State) SetQuery(q string) {
	s.f.Query = q
	s.resetPage()
}

// SetLevel selects exactly one level, as clicking a level pill does.
func (s *State) SetLevel(level int) {
	s.f.Levels = []int{level}
	s.resetPage()
}

// SetLevels replaces the level selection; nil or empty means any level.
func (s *State) SetLevels(levels []int) {
	s.f.Levels = normalizeLevels(levels)
	s.resetPage()
}

// ToggleLevel adds or removes one level from the selection.
func (s *State) ToggleLevel(level int) {
	for i, l := range s.f.Levels {
		if l == level {
			s.f.Levels = append(s.f.Levels[:i:i], s.f.Levels[i+1:]...)
			s.resetPage()
			return
		}
	}
	s.f.Levels = normalizeLevels(append(s.f.Levels, level))
	s.resetPage()
}

func (s *State) SetClass(class string) {
	s.f.Class = strings.TrimSpace(class)
	s.resetPage()
}

func (s *State) SetSchool(school string) {
	s.f.School = strings.TrimSpace(school)
	s.resetPage()
}

// ToggleTag adds or removes a tag; the selection stays in catalog order.
func (s *State) ToggleTag(t tags.TagKey) {
	set := tags.Set{}
	removed := false
	for _, have := range s.f.Tags {
		if have == t {
			removed = true
			continue
		}
		set.Add(have)
	}
	if !removed {
		set.Add(t)
	}
	s.f.Tags = set.Ordered()
	s.resetPage()
}

// SetTags replaces the tag selection.
func (s *State) SetTags(ts []tags.TagKey) {
	s.f.Tags = tags.SortKeys(ts)
	s.resetPage()
}

func (s *State) SetSort(mode SortMode) {
	s.f.Sort = mode
	s.resetPage()
}

// SetPage moves to page p (at least 1).
func (s *State) SetPage(p int) {
	if p < 1 {
		p = DefaultPage
	}
	s.f.Page = p
}

// SetPageSize changes the page size, keeping the first visible record on
// screen.
func (s *State) SetPageSize(size int) {
	cur := s.f.params()
	next := Params{Page: DefaultPage, PageSize: size}.Clamp()
	next.Page = cur.Offset()/next.PageSize + 1
	s.f.Page = next.Page
	s.f.PageSize = next.PageSize
}

// ClearAll drops every criterion and restores the default sort. Kind and
// page size are kept.
func (s *State) ClearAll() {
	s.f = Filter{
		Kind:     s.f.Kind,
		Sort:     DefaultSort,
		Page:     DefaultPage,
		PageSize: s.f.PageSize,
	}
}

// ClearFacet drops one criterion.
func (s *State) ClearFacet(name FacetName) {
	switch name {
	case FacetQuery:
		s.f.Query = ""
	case FacetLevel:
		s.f.Levels = nil
	case FacetClass:
		s.f.Class = ""
	case FacetSchool:
		s.f.School = ""
	case FacetTags:
		s.f.Tags = nil
	}
	s.resetPage()
}

// Prune removes selections that no longer exist in facets, such as a level
// that vanished after a dataset swap. It reports whether anything changed; if
// so the page resets to 1.
func (s *State) Prune(facets Facets) bool {
	changed := false

	levels := s.f.Levels[:0:0]
	for _, l := range s.f.Levels {
		if facets.HasLevel(l) {
			levels = append(levels, l)
		} else {
			changed = true
		}
	}
	s.f.Levels = levels

	if s.f.Class != "" && !facets.HasClass(s.f.Class) {
		s.f.Class = ""
		changed = true
	}
	if s.f.School != "" && !facets.HasSchool(s.f.School) {
		s.f.School = ""
		changed = true
	}

	ts := s.f.Tags[:0:0]
	for _, t := range s.f.Tags {
		if facets.HasTag(t) {
			ts = append(ts, t)
		} else {
			changed = true
		}
	}
	s.f.Tags = ts

	if changed {
		s.resetPage()
	}
	return changed
}

func normalizeLevels(levels []int) []int {
	if len(levels) == 0 {
		return nil
	}
	seen := make(map[int]bool, len(levels))
	out := make([]int, 0, len(levels))
	for _, l := range levels {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	sort.Ints(out)
	return out
}
