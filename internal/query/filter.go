package query

import (
	"fmt"
	"strings"

	"github.com/standardbeagle/grimoire/internal/catalog"
	"github.com/standardbeagle/grimoire/internal/tags"
)

// SortMode orders the filtered result set.
type SortMode string

const (
	SortNameAsc   SortMode = "name-asc"
	SortLevelAsc  SortMode = "level-asc"
	SortLevelDesc SortMode = "level-desc"
)

// DefaultSort is the initial sort of a fresh filter state.
const DefaultSort = SortLevelAsc

// SortModes lists the accepted modes.
func SortModes() []SortMode {
	return []SortMode{SortNameAsc, SortLevelAsc, SortLevelDesc}
}

// ParseSort accepts a sort mode name; empty input yields DefaultSort.
func ParseSort(s string) (SortMode, error) {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultSort, nil
	case SortNameAsc:
		return SortNameAsc, nil
	case SortLevelAsc:
		return SortLevelAsc, nil
	case SortLevelDesc:
		return SortLevelDesc, nil
	}
	return "", fmt.Errorf("unknown sort mode %q (want name-asc, level-asc or level-desc)", s)
}

// Filter is a snapshot of the caller's filter state. Zero values mean "any":
// no levels, an empty class or school, and no tags filter nothing.
type Filter struct {
	Kind     catalog.Kind  `json:"kind,omitempty"`
	Query    string        `json:"query,omitempty"`
	Levels   []int         `json:"levels,omitempty"`
	Class    string        `json:"class,omitempty"`
	School   string        `json:"school,omitempty"`
	Tags     []tags.TagKey `json:"tags,omitempty"`
	Sort     SortMode      `json:"sort,omitempty"`
	Page     int           `json:"page,omitempty"`
	PageSize int           `json:"pageSize,omitempty"`
}

func (f Filter) params() Params {
	return Params{Page: f.Page, PageSize: f.PageSize}.Clamp()
}

func (f Filter) sortMode() SortMode {
	if f.Sort == "" {
		return DefaultSort
	}
	return f.Sort
}
