package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcp-searxng-go/searxng"
)

// stubSearcher records requests instead of hitting a live instance.
type stubSearcher struct {
	calls int
	last  searxng.SearchRequest
	resp  *searxng.SearchResponse
	err   error
}

func (s *stubSearcher) Search(_ context.Context, req searxng.SearchRequest) (*searxng.SearchResponse, error) {
	s.calls++
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	if s.resp != nil {
		return s.resp, nil
	}
	return &searxng.SearchResponse{Query: req.Query, Results: []searxng.SearchResult{}}, nil
}

func TestWebSearchAppliesDefaults(t *testing.T) {
	stub := &stubSearcher{}
	tool := newWebSearchTool(stub, newSearchDefaults())

	_, err := tool.handle(context.Background(), map[string]any{"query": "golang"})
	require.NoError(t, err)
	require.Equal(t, 1, stub.calls)
	assert.Equal(t, searxng.SearchRequest{
		Query:      "golang",
		Categories: []string{"general"},
		Engines:    []string{"google", "bing", "duckduckgo"},
		Language:   "en",
		MaxResults: 10,
		SafeSearch: 1,
	}, stub.last)
}

func TestWebSearchRejectsMissingQuery(t *testing.T) {
	stub := &stubSearcher{}
	tool := newWebSearchTool(stub, newSearchDefaults())

	for _, args := range []map[string]any{
		{},
		{"query": ""},
		{"query": 42},
	} {
		_, err := tool.handle(context.Background(), args)
		var invalid *invalidArgumentError
		require.ErrorAs(t, err, &invalid)
	}
	assert.Zero(t, stub.calls, "validation must short-circuit before any upstream call")
}

func TestWebSearchOverrides(t *testing.T) {
	stub := &stubSearcher{}
	tool := newWebSearchTool(stub, newSearchDefaults())

	// Arguments carry the shapes a JSON decoder produces: []any and float64.
	_, err := tool.handle(context.Background(), map[string]any{
		"query":       "golang",
		"categories":  []any{"news"},
		"engines":     []any{"brave", "mojeek"},
		"language":    "de",
		"max_results": float64(3),
		"time_range":  "month",
	})
	require.NoError(t, err)
	assert.Equal(t, searxng.SearchRequest{
		Query:      "golang",
		Categories: []string{"news"},
		Engines:    []string{"brave", "mojeek"},
		Language:   "de",
		MaxResults: 3,
		TimeRange:  "month",
		SafeSearch: 1,
	}, stub.last)
}

func TestWebSearchCoercesNonPositiveCap(t *testing.T) {
	stub := &stubSearcher{}
	tool := newWebSearchTool(stub, newSearchDefaults())

	for _, v := range []any{float64(0), float64(-5), "ten"} {
		_, err := tool.handle(context.Background(), map[string]any{"query": "q", "max_results": v})
		require.NoError(t, err)
		assert.Equal(t, 10, stub.last.MaxResults)
	}
}

func TestWebSearchSafeSearchNotSettable(t *testing.T) {
	stub := &stubSearcher{}
	tool := newWebSearchTool(stub, newSearchDefaults())

	_, err := tool.handle(context.Background(), map[string]any{"query": "q", "safesearch": float64(2)})
	require.NoError(t, err)
	assert.Equal(t, 1, stub.last.SafeSearch)
}

func TestWebSearchEmptyResults(t *testing.T) {
	stub := &stubSearcher{}
	tool := newWebSearchTool(stub, newSearchDefaults())

	blocks, err := tool.handle(context.Background(), map[string]any{"query": "no hits"})
	require.NoError(t, err)
	assert.Empty(t, blocks, "zero hits must yield zero blocks, not a placeholder")
}

func TestWebSearchPropagatesClientError(t *testing.T) {
	stub := &stubSearcher{err: &searxng.UpstreamError{StatusCode: 502, Err: errors.New("bad gateway")}}
	tool := newWebSearchTool(stub, newSearchDefaults())

	_, err := tool.handle(context.Background(), map[string]any{"query": "q"})
	var upstream *searxng.UpstreamError
	require.ErrorAs(t, err, &upstream)
}

func TestFormatResults(t *testing.T) {
	blocks := formatResults(&searxng.SearchResponse{
		Query:   "q",
		Results: []searxng.SearchResult{{Index: 1, Title: "T", URL: "U", Content: "C"}},
	})
	require.Equal(t, []string{"[1] T\nURL: U\nC\n"}, blocks)
}

func TestFormatResultsEmptyContent(t *testing.T) {
	blocks := formatResults(&searxng.SearchResponse{
		Query:   "q",
		Results: []searxng.SearchResult{{Index: 1, Title: "T", URL: "U"}},
	})
	require.Equal(t, []string{"[1] T\nURL: U\n\n"}, blocks)
}

func TestFormatResultsOrdering(t *testing.T) {
	blocks := formatResults(&searxng.SearchResponse{
		Query: "q",
		Results: []searxng.SearchResult{
			{Index: 1, Title: "first", URL: "u1", Content: "c1"},
			{Index: 2, Title: "second", URL: "u2", Content: "c2"},
		},
	})
	require.Len(t, blocks, 2)
	assert.Equal(t, "[1] first\nURL: u1\nc1\n", blocks[0])
	assert.Equal(t, "[2] second\nURL: u2\nc2\n", blocks[1])
}

func TestDispatchUnknownTool(t *testing.T) {
	d := newDispatcher()
	d.register(webSearchToolName, func(context.Context, map[string]any) ([]string, error) {
		t.Fatal("web_search must not run for an unknown tool name")
		return nil, nil
	})

	blocks, err := d.dispatch(context.Background(), "not_a_tool", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Unsupported tool: not_a_tool"}, blocks)
}

func TestDispatchRoutesByName(t *testing.T) {
	d := newDispatcher()
	d.register("echo", func(_ context.Context, args map[string]any) ([]string, error) {
		return []string{args["text"].(string)}, nil
	})

	blocks, err := d.dispatch(context.Background(), "echo", map[string]any{"text": "hello"})
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, blocks)
}

func TestReadResource(t *testing.T) {
	text, err := readResource(searchResourceURI)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message": "This feature is not yet implemented"}`, text)
}

func TestReadResourceUnknownScheme(t *testing.T) {
	_, err := readResource("gopher://web/search")
	var invalid *invalidArgumentError
	require.ErrorAs(t, err, &invalid)
}
