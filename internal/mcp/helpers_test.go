package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/grimoire/internal/index"
	"github.com/standardbeagle/grimoire/internal/session"
	"github.com/standardbeagle/grimoire/testhelpers"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cat := session.New(index.DefaultOptions())
	t.Cleanup(func() { _ = cat.Close() })
	_, err := cat.Load(testhelpers.SampleSpells(), testhelpers.SampleFeatures())
	require.NoError(t, err)
	return NewServer(cat, nil)
}

// callTool invokes a handler directly and returns the raw result.
func (s *Server) callTool(toolName string, params map[string]interface{}) (*mcp.CallToolResult, error) {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}
	req := &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Name: toolName, Arguments: paramsJSON},
	}

	ctx := context.Background()
	switch toolName {
	case "info":
		return s.handleInfo(ctx, req)
	case "search":
		return s.handleSearch(ctx, req)
	case "tags":
		return s.handleTags(ctx, req)
	case "facets":
		return s.handleFacets(ctx, req)
	case "classify":
		return s.handleClassify(ctx, req)
	case "pack":
		return s.handlePack(ctx, req)
	}
	return nil, fmt.Errorf("unknown tool: %s", toolName)
}

// decodeResult unmarshals the text content of a tool result.
func decodeResult(t *testing.T, result *mcp.CallToolResult, v interface{}) {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	require.NoError(t, json.Unmarshal([]byte(text.Text), v))
}
