// Command mcp-searxng-go is an MCP server that exposes web search
// through a SearXNG instance over stdio.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"mcp-searxng-go/searxng"
)

const (
	serverName    = "mcp-searxng-go"
	serverVersion = "0.2.0"

	defaultInstanceURL = "http://localhost:8080"

	// JSON-RPC internal error, logged alongside failed tool calls.
	internalErrorCode = -32603
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Logger = newLogger()

	cfg := configFromEnv()
	log.Info().Str("version", serverVersion).Str("instance_url", cfg.BaseURL).Msg("starting")
	if cfg.Username != "" && cfg.Password != "" {
		log.Info().Msg("searxng basic authentication configured")
	} else if cfg.Username != "" || cfg.Password != "" {
		log.Warn().Msg("partial searxng authentication: both AUTH_USERNAME and AUTH_PASSWORD must be set")
	}

	server := newServer(cfg)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !isShutdownError(err) {
		log.Fatal().Err(err).Msg("mcp server error")
	}
	log.Info().Msg("server has shut down")
}

// newLogger writes to stderr; stdout carries the MCP transport.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && parsed != zerolog.NoLevel {
		level = parsed
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).With().Timestamp().Logger()
}

func configFromEnv() searxng.Config {
	baseURL := os.Getenv("SEARXNG_URL")
	if baseURL == "" {
		baseURL = defaultInstanceURL
	}
	return searxng.Config{
		BaseURL:  baseURL,
		Username: os.Getenv("AUTH_USERNAME"),
		Password: os.Getenv("AUTH_PASSWORD"),
	}
}

// newServer wires the tool dispatcher and the resource listing into an
// MCP server.
func newServer(cfg searxng.Config) *mcp.Server {
	search := newWebSearchTool(searxng.NewClient(cfg), newSearchDefaults())
	urlRead := newURLReadTool(searxng.DefaultTimeout)

	tools := newDispatcher()
	tools.register(webSearchToolName, search.handle)
	tools.register(urlReadToolName, urlRead.handle)

	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{
		Instructions: "This server provides web search via SearXNG and URL content reading.",
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        webSearchToolName,
		Title:       "Web Search Tool",
		Description: "Use SearXNG to search the web for information",
		InputSchema: webSearchSchema(),
		Annotations: &mcp.ToolAnnotations{
			Title:           "SearXNG Tool",
			ReadOnlyHint:    true,
			IdempotentHint:  true,
			DestructiveHint: ptr(false),
			OpenWorldHint:   ptr(false),
		},
	}, toolAdapter(tools, webSearchToolName))

	mcp.AddTool(server, &mcp.Tool{
		Name:        urlReadToolName,
		Title:       "Web URL Read Tool",
		Description: "Read and convert the content from a URL to markdown",
		InputSchema: urlReadSchema(),
		Annotations: &mcp.ToolAnnotations{
			ReadOnlyHint:    true,
			IdempotentHint:  true,
			DestructiveHint: ptr(false),
		},
	}, toolAdapter(tools, urlReadToolName))

	server.AddResource(&mcp.Resource{
		URI:         searchResourceURI,
		Name:        "Web Search",
		Description: "Use SearXNG to search the web for information",
		MIMEType:    "application/json",
	}, handleReadResource)

	return server
}

// toolAdapter bridges a dispatcher entry to the SDK handler shape. Any
// handler error becomes a single tool-error result; no partial output
// is ever returned next to an error.
func toolAdapter(d *dispatcher, name string) mcp.ToolHandlerFor[map[string]any, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
		blocks, err := d.dispatch(ctx, name, args)
		if err != nil {
			log.Warn().Err(err).Str("tool", name).Int("code", internalErrorCode).Msg("tool call failed")
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{&mcp.TextContent{Text: "Search service error: " + err.Error()}},
			}, nil, nil
		}
		log.Debug().Str("tool", name).Int("blocks", len(blocks)).Msg("tool call completed")
		content := make([]mcp.Content, 0, len(blocks))
		for _, b := range blocks {
			content = append(content, &mcp.TextContent{Text: b})
		}
		return &mcp.CallToolResult{Content: content}, nil, nil
	}
}

func handleReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	text, err := readResource(req.Params.URI)
	if err != nil {
		return nil, err
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     text,
		}},
	}, nil
}

func webSearchSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"query": {
				Type:        "string",
				Description: "Search query string",
			},
			"categories": {
				Type:        "array",
				Items:       &jsonschema.Schema{Type: "string"},
				Description: "Search categories, e.g. ['general', 'images', 'news']",
			},
			"engines": {
				Type:        "array",
				Items:       &jsonschema.Schema{Type: "string"},
				Description: "Search engines, e.g. ['google', 'bing', 'duckduckgo']",
			},
			"language": {
				Type:        "string",
				Description: "Search language code (default 'en')",
			},
			"max_results": {
				Type:        "integer",
				Description: "Maximum number of results to return (default 10)",
			},
			"time_range": {
				Type:        "string",
				Enum:        []any{"day", "week", "month", "year"},
				Description: "Time range filter ('day', 'week', 'month', 'year')",
			},
		},
		Required: []string{"query"},
	}
}

func urlReadSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"url": {
				Type:        "string",
				Description: "URL of the page to read",
			},
		},
		Required: []string{"url"},
	}
}

// isShutdownError reports errors that indicate a normal shutdown of
// the stdio transport.
func isShutdownError(err error) bool {
	return errors.Is(err, context.Canceled) ||
		strings.Contains(err.Error(), "connection closed") ||
		strings.Contains(err.Error(), "io: read/write on closed pipe")
}

func ptr[T any](v T) *T {
	return &v
}
