package mcp

import (
	"fmt"
	"strings"

	"github.com/standardbeagle/grimoire/internal/catalog"
	"github.com/standardbeagle/grimoire/internal/query"
	"github.com/standardbeagle/grimoire/internal/tags"
)

// SearchParams are the arguments of the search tool.
type SearchParams struct {
	Query    string   `json:"query"`
	Kind     string   `json:"kind"`
	Levels   []int    `json:"levels"`
	Class    string   `json:"class"`
	School   string   `json:"school"`
	Tags     []string `json:"tags"`
	Sort     string   `json:"sort"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
	Lang     string   `json:"lang"`
}

// KindParams are the arguments of the tags and facets tools.
type KindParams struct {
	Kind string `json:"kind"`
}

// ClassifyParams are the arguments of the classify tool.
type ClassifyParams struct {
	Key  string `json:"key"`
	Lang string `json:"lang"`
}

// PackParams are the arguments of the pack tool.
type PackParams struct {
	Action string   `json:"action"`
	Keys   []string `json:"keys"`
	Lang   string   `json:"lang"`
}

func parseKind(s string) (catalog.Kind, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	return catalog.ParseKind(s)
}

// toFilter converts params into a query filter. Unrecognized tags are
// dropped and reported as warnings.
func (p SearchParams) toFilter() (query.Filter, []string, error) {
	kind, err := parseKind(p.Kind)
	if err != nil {
		return query.Filter{}, nil, err
	}
	sortMode, err := query.ParseSort(p.Sort)
	if err != nil {
		return query.Filter{}, nil, err
	}

	var warnings []string
	var keys []tags.TagKey
	for _, raw := range p.Tags {
		k, ok := tags.Parse(raw)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown tag %q ignored", raw))
			continue
		}
		keys = append(keys, k)
	}

	return query.Filter{
		Kind:     kind,
		Query:    p.Query,
		Levels:   p.Levels,
		Class:    p.Class,
		School:   p.School,
		Tags:     keys,
		Sort:     sortMode,
		Page:     p.Page,
		PageSize: p.PageSize,
	}, warnings, nil
}
