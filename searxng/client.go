// Package searxng is a minimal client for the JSON search API of a
// SearXNG instance.
package searxng

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds a single upstream request when the caller's
// context carries no deadline of its own.
const DefaultTimeout = 30 * time.Second

// Config holds the connection settings for one SearXNG instance.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Username string
	Password string
}

// Client queries a single SearXNG instance. It holds no mutable state
// and is safe for concurrent use.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

// NewClient returns a client for the instance described by cfg.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		username:   cfg.Username,
		password:   cfg.Password,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Search runs one query against the instance and normalizes the
// response: hits are truncated to req.MaxResults in upstream order and
// indexed 1..N. Hits with missing fields are kept with empty strings.
// An empty upstream result list is a valid, empty response.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("q", req.Query)
	params.Set("format", "json")
	if len(req.Categories) > 0 {
		params.Set("categories", strings.Join(req.Categories, ","))
	}
	if len(req.Engines) > 0 {
		params.Set("engines", strings.Join(req.Engines, ","))
	}
	if req.Language != "" {
		params.Set("language", req.Language)
	}
	// Leaving time_range out entirely means "no filter"; an empty
	// value would be rejected by the instance.
	if req.TimeRange != "" {
		params.Set("time_range", req.TimeRange)
	}
	params.Set("safesearch", strconv.Itoa(req.SafeSearch))

	endpoint := c.baseURL + "/search?" + params.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	if c.username != "" && c.password != "" {
		httpReq.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = resp.Status
		}
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Err: errors.New(msg)}
	}

	var raw apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &ParseError{Err: err}
	}

	for _, engine := range raw.UnresponsiveEngines {
		if len(engine) > 0 {
			log.Warn().Strs("engine", engine).Msg("unresponsive searxng engine")
		}
	}

	hits := raw.Results
	if len(hits) > req.MaxResults {
		hits = hits[:req.MaxResults]
	}
	results := make([]SearchResult, len(hits))
	for i, hit := range hits {
		results[i] = SearchResult{
			Index:   i + 1,
			Title:   hit.Title,
			URL:     hit.URL,
			Content: hit.Content,
		}
	}
	return &SearchResponse{Query: req.Query, Results: results}, nil
}
