// Package mcp exposes the catalog to MCP clients over stdio.
package mcp

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/grimoire/internal/catalog"
	"github.com/standardbeagle/grimoire/internal/config"
	"github.com/standardbeagle/grimoire/internal/debug"
	"github.com/standardbeagle/grimoire/internal/pack"
	"github.com/standardbeagle/grimoire/internal/session"
	"github.com/standardbeagle/grimoire/internal/version"
)

// Server wires the catalog session into an MCP server.
type Server struct {
	catalog *session.Catalog
	cfg     *config.Config
	pack    *pack.Store
	server  *mcp.Server
}

// NewServer registers every tool. A nil cfg means defaults rooted at the
// working directory.
func NewServer(cat *session.Catalog, cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.Default(".")
	}

	s := &Server{
		catalog: cat,
		cfg:     cfg,
		pack:    pack.New(),
		server: mcp.NewServer(&mcp.Implementation{
			Name:    version.Name,
			Version: version.Version,
		}, nil),
	}
	s.registerTools()
	return s
}

// Pack returns the selection managed through the pack tool.
func (s *Server) Pack() *pack.Store { return s.pack }

// Start serves on stdin/stdout until ctx is done or the client disconnects.
func (s *Server) Start(ctx context.Context) error {
	debug.LogMCP("starting MCP server with stdio transport (%d records)\n", s.catalog.Len())
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func stringArray(description string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "array",
		Description: description,
		Items:       &jsonschema.Schema{Type: "string"},
	}
}

func kindSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: "Record kind: spell or feature. Omit for both.",
		Enum:        []any{string(catalog.KindSpell), string(catalog.KindFeature)},
	}
}

func langSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: "Display language for names and tag labels (default from config)",
		Enum:        []any{string(catalog.LangPT), string(catalog.LangEN)},
	}
}

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "info",
		Description: "Server version, record counts and the list of tools.",
		InputSchema: &jsonschema.Schema{Type: "object"},
	}, s.handleInfo)

	s.server.AddTool(&mcp.Tool{
		Name: "search",
		Description: "Search spells and class features by name or text in Portuguese or English. " +
			"Accent-insensitive, tolerates typos and partial words. Filter by level, class, school and tags.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"query": {Type: "string", Description: "Free text; an exact name match ranks first"},
				"kind":  kindSchema(),
				"levels": {
					Type:        "array",
					Description: "Levels to include (spells 0-9, features 1-20)",
					Items:       &jsonschema.Schema{Type: "integer"},
				},
				"class":     {Type: "string", Description: "Class name, e.g. Wizard"},
				"school":    {Type: "string", Description: "Spell school in either language"},
				"tags":      stringArray("Tags that must all be present; keys or labels in either language"),
				"sort":      {Type: "string", Enum: []any{"name-asc", "level-asc", "level-desc"}},
				"page":      {Type: "integer", Description: "1-based page number"},
				"page_size": {Type: "integer", Description: "Results per page (max 100)"},
				"lang":      langSchema(),
			},
		},
	}, s.handleSearch)

	s.server.AddTool(&mcp.Tool{
		Name:        "tags",
		Description: "List the tag vocabulary with bilingual labels and how many records carry each tag.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"kind": kindSchema(),
			},
		},
	}, s.handleTags)

	s.server.AddTool(&mcp.Tool{
		Name:        "facets",
		Description: "Levels, classes, schools and tags present in the loaded records of one kind.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"kind": kindSchema(),
			},
		},
	}, s.handleFacets)

	s.server.AddTool(&mcp.Tool{
		Name:        "classify",
		Description: "Show one record with the tags derived for it. Key is kind:id, e.g. spell:fireball.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"key":  {Type: "string", Description: "Composite record key kind:id"},
				"lang": langSchema(),
			},
			Required: []string{"key"},
		},
	}, s.handleClassify)

	s.server.AddTool(&mcp.Tool{
		Name:        "pack",
		Description: "Manage the current selection of records: add, remove, clear or list.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"action": {Type: "string", Enum: []any{"add", "remove", "clear", "list"}},
				"keys":   stringArray("Composite record keys for add/remove"),
				"lang":   langSchema(),
			},
			Required: []string{"action"},
		},
	}, s.handlePack)
}
