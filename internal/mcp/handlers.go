package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/grimoire/internal/catalog"
	"github.com/standardbeagle/grimoire/internal/debug"
	"github.com/standardbeagle/grimoire/internal/display"
	"github.com/standardbeagle/grimoire/internal/pack"
	"github.com/standardbeagle/grimoire/internal/query"
	"github.com/standardbeagle/grimoire/internal/tags"
	"github.com/standardbeagle/grimoire/internal/version"
)

const suggestionCount = 3

// decodeArgs tolerates an empty argument object.
func decodeArgs(req *mcp.CallToolRequest, v interface{}) error {
	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return nil
	}
	return json.Unmarshal(req.Params.Arguments, v)
}

func (s *Server) formatter(lang string) *display.Formatter {
	l := s.cfg.Lang()
	if lang != "" {
		l = catalog.ParseLang(lang)
	}
	return display.NewFormatter(display.FormatterOptions{Format: display.FormatJSON, Lang: l})
}

func (s *Server) tagsOf(key string) []tags.TagKey {
	_, assigned, _ := s.catalog.Tags(key)
	return assigned
}

func (s *Server) handleInfo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := s.catalog.Snapshot()
	return createJSONResponse(map[string]interface{}{
		"server_name":    version.Name,
		"server_version": version.FullInfo(),
		"build_id":       version.BuildID(),
		"go_version":     runtime.Version(),
		"spells":         len(snap.Spells),
		"features":       len(snap.Features),
		"fingerprint":    fmt.Sprintf("%016x", snap.Fingerprint),
		"loaded_at":      snap.LoadedAt,
		"tools":          []string{"info", "search", "tags", "facets", "classify", "pack"},
	})
}

func (s *Server) handleSearch(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params SearchParams
	if err := decodeArgs(req, &params); err != nil {
		return createErrorResponse("search", fmt.Errorf("invalid parameters: %w", err),
			`Use: {"query": "bola de fogo", "kind": "spell", "levels": [3]}`)
	}

	filter, warnings, err := params.toFilter()
	if err != nil {
		return createErrorResponse("search", err, "")
	}
	if filter.PageSize == 0 {
		filter.PageSize = s.cfg.Search.PageSize
	}
	if params.Sort == "" {
		if mode, err := query.ParseSort(s.cfg.Search.Sort); err == nil {
			filter.Sort = mode
		}
	}
	debug.LogMCP("search %q kind=%s tags=%v\n", filter.Query, filter.Kind, filter.Tags)

	res := s.catalog.Search(filter)
	f := s.formatter(params.Lang)

	page := display.PageView{
		Records: make([]display.RecordView, 0, len(res.Records)),
		Total:   res.Total,
		Meta:    res.Meta,
		Exact:   res.Exact,
	}
	for _, r := range res.Records {
		page.Records = append(page.Records, f.View(r, s.tagsOf(r.Key())))
	}
	if res.Total == 0 && strings.TrimSpace(filter.Query) != "" {
		page.Suggestions = s.catalog.Suggest(filter.Kind, filter.Query, suggestionCount)
	}

	return createResponseWithWarnings(page, warnings)
}

func (s *Server) handleTags(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params KindParams
	if err := decodeArgs(req, &params); err != nil {
		return createErrorResponse("tags", fmt.Errorf("invalid parameters: %w", err), "")
	}
	kind, err := parseKind(params.Kind)
	if err != nil {
		return createErrorResponse("tags", err, "")
	}

	counts := s.catalog.TagCounts(kind)
	entries := make([]display.TagEntry, 0, len(tags.Order()))
	for _, k := range tags.Order() {
		l, _ := tags.LabelOf(k)
		entries = append(entries, display.TagEntry{Key: k, PT: l.PT, EN: l.EN, Count: counts[k]})
	}
	return createJSONResponse(map[string]interface{}{"tags": entries})
}

func (s *Server) handleFacets(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params KindParams
	if err := decodeArgs(req, &params); err != nil {
		return createErrorResponse("facets", fmt.Errorf("invalid parameters: %w", err), "")
	}
	kind, err := parseKind(params.Kind)
	if err != nil {
		return createErrorResponse("facets", err, "")
	}
	return createJSONResponse(s.catalog.Facets(kind))
}

func (s *Server) handleClassify(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params ClassifyParams
	if err := decodeArgs(req, &params); err != nil {
		return createErrorResponse("classify", fmt.Errorf("invalid parameters: %w", err), "")
	}
	kind, id, err := catalog.ParseKey(params.Key)
	if err != nil {
		return createErrorResponse("classify", err, `Use: {"key": "spell:fireball"}`)
	}

	r, assigned, ok := s.catalog.Tags(params.Key)
	if !ok {
		help := ""
		if sugg := s.catalog.Suggest(kind, strings.ReplaceAll(id, "-", " "), suggestionCount); len(sugg) > 0 {
			keys := make([]string, len(sugg))
			for i, sg := range sugg {
				keys[i] = sg.Key
			}
			help = "Did you mean: " + strings.Join(keys, ", ")
		}
		return createErrorResponse("classify", fmt.Errorf("no %s with id %q", kind, id), help)
	}
	return createJSONResponse(s.formatter(params.Lang).View(r, assigned))
}

func (s *Server) handlePack(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params PackParams
	if err := decodeArgs(req, &params); err != nil {
		return createErrorResponse("pack", fmt.Errorf("invalid parameters: %w", err), "")
	}

	action := strings.ToLower(strings.TrimSpace(params.Action))
	var warnings []string
	switch action {
	case "add", "remove":
		for _, key := range params.Keys {
			kind, id, err := catalog.ParseKey(key)
			if err != nil {
				warnings = append(warnings, err.Error())
				continue
			}
			item := pack.Item{Kind: kind, ID: id}
			if action == "add" {
				if _, _, ok := s.catalog.Tags(key); !ok {
					warnings = append(warnings, fmt.Sprintf("no record %q", key))
					continue
				}
				s.pack.Add(item)
			} else {
				s.pack.Remove(item)
			}
		}
	case "clear":
		s.pack.Clear()
	case "list":
	default:
		return createErrorResponse("pack", fmt.Errorf("unknown action %q", params.Action),
			"action must be one of add, remove, clear, list")
	}

	snap := s.catalog.Snapshot()
	f := s.formatter(params.Lang)
	resolved := s.pack.Resolve(snap.Spells, snap.Features)
	views := make([]display.RecordView, 0, len(resolved))
	for _, r := range resolved {
		views = append(views, f.View(r, snap.Assignment[r.Key()]))
	}

	return createResponseWithWarnings(map[string]interface{}{
		"selected": s.pack.Len(),
		"records":  views,
	}, warnings)
}
