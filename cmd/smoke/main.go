// Command smoke drives a locally built server binary over stdio: it
// lists the advertised tools, runs one web_search, and prints the
// returned text blocks. Intended for manual verification against a
// live SearXNG instance.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	serverBin := flag.String("server", "./mcp-searxng-go", "path to the server binary")
	query := flag.String("query", "golang", "search query to send")
	flag.Parse()

	if err := run(context.Background(), *serverBin, *query); err != nil {
		fmt.Fprintln(os.Stderr, "smoke:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, serverBin, query string) error {
	client := mcp.NewClient(&mcp.Implementation{Name: "mcp-searxng-smoke", Version: "0.1.0"}, nil)

	cmd := exec.CommandContext(ctx, serverBin)
	cmd.Stderr = os.Stderr
	session, err := client.Connect(ctx, &mcp.CommandTransport{Command: cmd}, nil)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", serverBin, err)
	}
	defer session.Close()

	for tool, err := range session.Tools(ctx, nil) {
		if err != nil {
			return fmt.Errorf("list tools: %w", err)
		}
		fmt.Printf("tool: %s: %s\n", tool.Name, tool.Description)
	}

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "web_search",
		Arguments: map[string]any{"query": query},
	})
	if err != nil {
		return fmt.Errorf("call web_search: %w", err)
	}
	for _, content := range result.Content {
		if tc, ok := content.(*mcp.TextContent); ok {
			fmt.Println(tc.Text)
		}
	}
	if result.IsError {
		return fmt.Errorf("web_search reported an error")
	}
	return nil
}
