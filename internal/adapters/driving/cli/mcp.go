package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Tools: search, read_document, cite_document.
Resources: sercha://categories, sercha://documents/{documentId}.

Examples:
  # Stdio mode (default)
  sercha-reader mcp

  # HTTP mode (for MCP Inspector, remote access)
  sercha-reader mcp --http :8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "sercha-reader": {
        "command": "/path/to/sercha-reader",
        "args": ["mcp"]
      }
    }
  }`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().String("http", "", "serve over HTTP on this address instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

// newMCPServer builds the MCP server from the wired services.
func newMCPServer() (*mcp.Server, error) {
	if svc == nil {
		return nil, errors.New("search service not configured")
	}
	return mcp.NewServer(&mcp.Ports{
		Search: svc.Search,
		Reader: svc.Reader,
		Export: svc.Export,
	})
}

func runMCP(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString("http")
	if err != nil {
		return fmt.Errorf("getting http flag: %w", err)
	}

	server, err := newMCPServer()
	if err != nil {
		return err
	}

	if addr != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
