package searxng

// SearchRequest carries one validated search intent. It is built once
// per tool invocation and not mutated afterwards.
type SearchRequest struct {
	Query      string
	Categories []string
	Engines    []string
	Language   string
	MaxResults int
	TimeRange  string // "day", "week", "month", "year", or empty for no filter
	SafeSearch int
}

// SearchResult is one normalized hit. Index is 1-based and assigned
// after truncation, so it is contiguous within a single response.
type SearchResult struct {
	Index   int    `json:"index"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// SearchResponse holds the original query and at most MaxResults hits
// in upstream order.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

// apiResponse mirrors the parts of the SearXNG JSON payload this
// client consumes.
type apiResponse struct {
	Query               string      `json:"query"`
	Results             []apiResult `json:"results"`
	UnresponsiveEngines [][]string  `json:"unresponsive_engines"` // [engine_name, error_message]
}

type apiResult struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
}
