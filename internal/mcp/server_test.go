package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/grimoire/internal/display"
	"github.com/standardbeagle/grimoire/internal/query"
	"github.com/standardbeagle/grimoire/internal/tags"
)

type searchResponse struct {
	display.PageView
	Warnings []string `json:"warnings"`
}

func TestSearch_ExactNameFirst(t *testing.T) {
	s := newTestServer(t)

	result, err := s.callTool("search", map[string]interface{}{"query": "Bola de Fogo", "kind": "spell"})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	var page searchResponse
	decodeResult(t, result, &page)
	require.NotEmpty(t, page.Records)
	assert.Equal(t, "spell:fireball", page.Records[0].Key)
	assert.Equal(t, "Bola de Fogo", page.Records[0].Name)
}

func TestSearch_FiltersAndLang(t *testing.T) {
	s := newTestServer(t)

	result, err := s.callTool("search", map[string]interface{}{
		"kind":   "spells",
		"levels": []int{1},
		"class":  "cleric",
		"tags":   []string{"Cura"},
		"sort":   "name-asc",
		"lang":   "en",
	})
	require.NoError(t, err)

	var page searchResponse
	decodeResult(t, result, &page)
	require.Equal(t, 2, page.Total)
	assert.Equal(t, "Cure Wounds", page.Records[0].Name)
	assert.Equal(t, "Healing Word", page.Records[1].Name)
	for _, r := range page.Records {
		found := false
		for _, c := range r.Tags {
			if c.Key == tags.Healing {
				found = true
			}
		}
		assert.True(t, found, "%s should carry the healing tag", r.Key)
	}
}

func TestSearch_UnknownTagWarns(t *testing.T) {
	s := newTestServer(t)

	result, err := s.callTool("search", map[string]interface{}{"kind": "spell", "tags": []string{"nonsense"}})
	require.NoError(t, err)

	var page searchResponse
	decodeResult(t, result, &page)
	assert.Len(t, page.Warnings, 1)
	assert.Equal(t, 10, page.Total)
}

func TestSearch_Suggestions(t *testing.T) {
	s := newTestServer(t)

	result, err := s.callTool("search", map[string]interface{}{"query": "Firebal", "kind": "spell", "levels": []int{9}})
	require.NoError(t, err)

	var page searchResponse
	decodeResult(t, result, &page)
	assert.Equal(t, 0, page.Total)
	require.NotEmpty(t, page.Suggestions)
	assert.Equal(t, "spell:fireball", page.Suggestions[0].Key)
	for _, sg := range page.Suggestions {
		assert.Contains(t, sg.Key, "spell:")
	}
}

func TestSearch_BadSort(t *testing.T) {
	s := newTestServer(t)

	result, err := s.callTool("search", map[string]interface{}{"sort": "sideways"})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestTags_Counts(t *testing.T) {
	s := newTestServer(t)

	result, err := s.callTool("tags", map[string]interface{}{"kind": "feature"})
	require.NoError(t, err)

	var body struct {
		Tags []display.TagEntry `json:"tags"`
	}
	decodeResult(t, result, &body)
	require.Len(t, body.Tags, len(tags.Order()))

	counts := map[tags.TagKey]int{}
	for _, e := range body.Tags {
		counts[e.Key] = e.Count
	}
	assert.Equal(t, 3, counts[tags.ShortRest])
	assert.Equal(t, 1, counts[tags.LongRest])
}

func TestFacets(t *testing.T) {
	s := newTestServer(t)

	result, err := s.callTool("facets", map[string]interface{}{"kind": "spell"})
	require.NoError(t, err)

	var f query.Facets
	decodeResult(t, result, &f)
	assert.Equal(t, []int{0, 1, 2, 3}, f.Levels)
	assert.Contains(t, f.Classes, "Wizard")
	assert.NotEmpty(t, f.Schools)
}

func TestClassify(t *testing.T) {
	s := newTestServer(t)

	result, err := s.callTool("classify", map[string]interface{}{"key": "spell:shield", "lang": "en"})
	require.NoError(t, err)

	var v display.RecordView
	decodeResult(t, result, &v)
	assert.Equal(t, "Shield", v.Name)
	keys := make([]tags.TagKey, len(v.Tags))
	for i, c := range v.Tags {
		keys[i] = c.Key
	}
	assert.Contains(t, keys, tags.Reaction)
	assert.Contains(t, keys, tags.Buff)
}

func TestClassify_Errors(t *testing.T) {
	s := newTestServer(t)

	result, err := s.callTool("classify", map[string]interface{}{"key": "fireball"})
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = s.callTool("classify", map[string]interface{}{"key": "spell:firebal"})
	require.NoError(t, err)
	assert.True(t, result.IsError)

	var body map[string]interface{}
	decodeResult(t, result, &body)
	assert.Contains(t, body["help"], "spell:fireball")
}

func TestPack_Lifecycle(t *testing.T) {
	s := newTestServer(t)

	var body struct {
		Selected int                  `json:"selected"`
		Records  []display.RecordView `json:"records"`
		Warnings []string             `json:"warnings"`
	}

	result, err := s.callTool("pack", map[string]interface{}{
		"action": "add",
		"keys":   []string{"feature:rage", "spell:bless", "spell:nope", "spell:bless"},
	})
	require.NoError(t, err)
	decodeResult(t, result, &body)
	assert.Equal(t, 2, body.Selected)
	assert.Len(t, body.Warnings, 1)
	require.Len(t, body.Records, 2)
	assert.Equal(t, "feature:rage", body.Records[0].Key)

	result, err = s.callTool("pack", map[string]interface{}{"action": "remove", "keys": []string{"feature:rage"}})
	require.NoError(t, err)
	body.Warnings = nil
	decodeResult(t, result, &body)
	assert.Equal(t, 1, body.Selected)

	result, err = s.callTool("pack", map[string]interface{}{"action": "clear"})
	require.NoError(t, err)
	decodeResult(t, result, &body)
	assert.Equal(t, 0, body.Selected)
	assert.Equal(t, 0, s.Pack().Len())

	result, err = s.callTool("pack", map[string]interface{}{"action": "explode"})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestInfo(t *testing.T) {
	s := newTestServer(t)

	result, err := s.callTool("info", nil)
	require.NoError(t, err)

	var body map[string]interface{}
	decodeResult(t, result, &body)
	assert.Equal(t, "grimoire", body["server_name"])
	assert.EqualValues(t, 10, body["spells"])
	assert.EqualValues(t, 4, body["features"])
}

func TestServer_OverInMemoryTransport(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverT, clientT := mcp.NewInMemoryTransports()
	ss, err := s.server.Connect(ctx, serverT, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientT, nil)
	require.NoError(t, err)

	tools, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)
	names := make([]string, len(tools.Tools))
	for i, tool := range tools.Tools {
		names[i] = tool.Name
	}
	assert.ElementsMatch(t, []string{"info", "search", "tags", "facets", "classify", "pack"}, names)

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "search",
		Arguments: map[string]any{"query": "passo nebuloso"},
	})
	require.NoError(t, err)
	var page searchResponse
	decodeResult(t, res, &page)
	require.NotEmpty(t, page.Records)
	assert.Equal(t, "spell:misty-step", page.Records[0].Key)

	require.NoError(t, cs.Close())
	_ = ss.Wait()
}
