package main

import (
	"context"
	"fmt"
	"strings"

	"mcp-searxng-go/searxng"
)

const (
	webSearchToolName = "web_search"
	urlReadToolName   = "web_url_read"

	searchResourceURI = "searxng://web/search"
	resourceScheme    = "searxng://"
)

// invalidArgumentError reports caller input that fails validation
// before any upstream activity.
type invalidArgumentError struct {
	msg string
}

func (e *invalidArgumentError) Error() string {
	return e.msg
}

// searcher is the part of the SearXNG client the tool layer depends on.
type searcher interface {
	Search(ctx context.Context, req searxng.SearchRequest) (*searxng.SearchResponse, error)
}

// SearchDefaults are the values filled in for a web_search call when
// the caller omits the corresponding argument. They are injected at
// construction so the handler carries no process-wide state.
type SearchDefaults struct {
	Categories []string
	Engines    []string
	Language   string
	MaxResults int
	SafeSearch int
}

func newSearchDefaults() SearchDefaults {
	return SearchDefaults{
		Categories: []string{"general"},
		Engines:    []string{"google", "bing", "duckduckgo"},
		Language:   "en",
		MaxResults: 10,
		SafeSearch: 1,
	}
}

// toolFunc handles one tool invocation from the raw argument bag and
// returns the text blocks to send back.
type toolFunc func(ctx context.Context, args map[string]any) ([]string, error)

// dispatcher routes tool calls by name. Unknown names are answered
// with an informational block instead of an error.
type dispatcher struct {
	tools map[string]toolFunc
}

func newDispatcher() *dispatcher {
	return &dispatcher{tools: make(map[string]toolFunc)}
}

func (d *dispatcher) register(name string, fn toolFunc) {
	d.tools[name] = fn
}

func (d *dispatcher) dispatch(ctx context.Context, name string, args map[string]any) ([]string, error) {
	fn, ok := d.tools[name]
	if !ok {
		return []string{"Unsupported tool: " + name}, nil
	}
	return fn(ctx, args)
}

// webSearchTool implements the web_search tool on top of a SearXNG
// client.
type webSearchTool struct {
	client   searcher
	defaults SearchDefaults
}

func newWebSearchTool(client searcher, defaults SearchDefaults) *webSearchTool {
	return &webSearchTool{client: client, defaults: defaults}
}

func (t *webSearchTool) handle(ctx context.Context, args map[string]any) ([]string, error) {
	req, err := t.buildRequest(args)
	if err != nil {
		return nil, err
	}
	resp, err := t.client.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	return formatResults(resp), nil
}

// buildRequest validates the raw argument bag and fills in defaults.
// The query check runs first so an invalid call never reaches the
// network. A non-positive max_results falls back to the default cap,
// keeping the cap strictly positive. Safesearch is fixed and never
// read from input.
func (t *webSearchTool) buildRequest(args map[string]any) (searxng.SearchRequest, error) {
	query, _ := args["query"].(string)
	if query == "" {
		return searxng.SearchRequest{}, &invalidArgumentError{msg: "missing required parameter: query"}
	}

	req := searxng.SearchRequest{
		Query:      query,
		Categories: t.defaults.Categories,
		Engines:    t.defaults.Engines,
		Language:   t.defaults.Language,
		MaxResults: t.defaults.MaxResults,
		SafeSearch: t.defaults.SafeSearch,
	}
	if cats := stringSlice(args["categories"]); len(cats) > 0 {
		req.Categories = cats
	}
	if engines := stringSlice(args["engines"]); len(engines) > 0 {
		req.Engines = engines
	}
	if lang, ok := args["language"].(string); ok && lang != "" {
		req.Language = lang
	}
	if n, ok := intArg(args["max_results"]); ok && n > 0 {
		req.MaxResults = n
	}
	if tr, ok := args["time_range"].(string); ok && tr != "" {
		req.TimeRange = tr
	}
	return req, nil
}

// stringSlice converts an array argument. Arguments arrive as []any
// after JSON decoding; []string is accepted for direct calls.
func stringSlice(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// intArg accepts the numeric shapes a JSON decoder can produce.
func intArg(v any) (int, bool) {
	switch vv := v.(type) {
	case int:
		return vv, true
	case float64:
		return int(vv), true
	}
	return 0, false
}

// formatResults renders one text block per hit:
//
//	[{index}] {title}
//	URL: {url}
//	{content}
//
// with a trailing newline after the content line. Zero hits yield zero
// blocks, not a placeholder.
func formatResults(resp *searxng.SearchResponse) []string {
	blocks := make([]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		blocks = append(blocks, fmt.Sprintf("[%d] %s\nURL: %s\n%s\n", r.Index, r.Title, r.URL, r.Content))
	}
	return blocks
}

// readResource serves the single advertised resource. Everything under
// the searxng:// scheme answers with a placeholder payload.
func readResource(uri string) (string, error) {
	if !strings.HasPrefix(uri, resourceScheme) {
		return "", &invalidArgumentError{msg: "unsupported URI: " + uri}
	}
	return `{"message": "This feature is not yet implemented"}`, nil
}
