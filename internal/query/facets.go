package query

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/standardbeagle/grimoire/internal/catalog"
	"github.com/standardbeagle/grimoire/internal/tags"
	"github.com/standardbeagle/grimoire/internal/textnorm"
)

// Facets are the values present in a record set for one kind.
type Facets struct {
	Levels  []int                `json:"levels"`
	Classes []string             `json:"classes"`
	Schools []catalog.LangString `json:"schools,omitempty"`
	Tags    []tags.TagKey        `json:"tags"`
}

// ComputeFacets collects distinct levels, classes, schools and tags of the
// records of kind (all kinds when empty). Classes and schools are deduplicated
// on their normalized form, keeping the first spelling seen.
func ComputeFacets(records []catalog.Record, assignment tags.Assignment, kind catalog.Kind) Facets {
	levels := map[int]bool{}
	classSeen := map[string]bool{}
	schoolSeen := map[string]bool{}
	tagSet := tags.Set{}

	var f Facets
	for _, r := range records {
		if kind != "" && r.Kind() != kind {
			continue
		}
		if !levels[r.RecordLevel()] {
			levels[r.RecordLevel()] = true
			f.Levels = append(f.Levels, r.RecordLevel())
		}
		for _, c := range r.Classes() {
			k := textnorm.Key(c)
			if k != "" && !classSeen[k] {
				classSeen[k] = true
				f.Classes = append(f.Classes, c)
			}
		}
		if s := r.School(); !s.IsZero() {
			k := textnorm.Key(s.PT) + "|" + textnorm.Key(s.EN)
			if !schoolSeen[k] {
				schoolSeen[k] = true
				f.Schools = append(f.Schools, s)
			}
		}
		for _, t := range assignment[r.Key()] {
			tagSet.Add(t)
		}
	}

	col := collate.New(language.BrazilianPortuguese)
	sort.Ints(f.Levels)
	sort.SliceStable(f.Classes, func(i, j int) bool {
		return col.CompareString(f.Classes[i], f.Classes[j]) < 0
	})
	sort.SliceStable(f.Schools, func(i, j int) bool {
		return col.CompareString(f.Schools[i].PT, f.Schools[j].PT) < 0
	})
	f.Tags = tagSet.Ordered()
	return f
}

// HasLevel reports whether level occurs.
func (f Facets) HasLevel(level int) bool {
	for _, l := range f.Levels {
		if l == level {
			return true
		}
	}
	return false
}

// HasClass reports whether class occurs, ignoring case and accents.
func (f Facets) HasClass(class string) bool {
	k := textnorm.Key(class)
	for _, c := range f.Classes {
		if textnorm.Key(c) == k {
			return true
		}
	}
	return false
}

// HasSchool reports whether school occurs in either language.
func (f Facets) HasSchool(school string) bool {
	k := textnorm.Key(school)
	for _, s := range f.Schools {
		if textnorm.Key(s.PT) == k || textnorm.Key(s.EN) == k {
			return true
		}
	}
	return false
}

// HasTag reports whether any record carries t.
func (f Facets) HasTag(t tags.TagKey) bool {
	for _, have := range f.Tags {
		if have == t {
			return true
		}
	}
	return false
}
