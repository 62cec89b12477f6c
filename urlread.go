package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// urlReadTool fetches a page and converts its HTML to markdown.
type urlReadTool struct {
	httpClient *http.Client
}

func newURLReadTool(timeout time.Duration) *urlReadTool {
	return &urlReadTool{httpClient: &http.Client{Timeout: timeout}}
}

func (t *urlReadTool) handle(ctx context.Context, args map[string]any) ([]string, error) {
	target, _ := args["url"].(string)
	if target == "" {
		return nil, &invalidArgumentError{msg: "missing required parameter: url"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", target, err)
	}
	req.Header.Set("User-Agent", serverName+"/"+serverVersion)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %d", target, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from %s: %w", target, err)
	}

	converter := md.NewConverter(target, true, nil)
	markdown, err := converter.ConvertString(string(body))
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s to markdown: %w", target, err)
	}
	return []string{markdown}, nil
}
