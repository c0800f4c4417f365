// Package main provides the MCP command for the ccxp CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/B16B1RD/cc-xp-kit/internal/mcp"
)

// mcpCmd is the parent command for MCP operations.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long: `MCP (Model Context Protocol) server commands.

The MCP server lets AI agents generate acceptance test stubs, ask for TDD
strategy advice, and patch user stories documents through the Model
Context Protocol.

Commands:
  serve  - Start the MCP server over stdio`,
}

// mcpServeCmd starts the MCP server.
var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start MCP server over stdio",
	Long: `Start the ccxp MCP server over stdio.

This command starts an MCP server that communicates via JSON-RPC
over stdin/stdout. It's designed to be launched by AI hosts like
Cursor or Claude Desktop. Paths are resolved against the directory
the server is started in.

The server exposes the following tools:
  - extract_criteria: Extract GIVEN/WHEN/THEN criteria and the project category
  - generate_test_stubs: Generate (and optionally write) the acceptance test suite
  - recommend_strategy: Recommend a TDD strategy for a description
  - render_strategy_template: Render a strategy's code template
  - patch_stories: Apply a fix set to a stories document
  - get_schema: CLI schema and stories document format

Example configuration:
  {
    "mcpServers": {
      "ccxp": {
        "command": "ccxp",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
}

// runMCPServe starts the MCP server.
func runMCPServe(cmd *cobra.Command, args []string) error {
	server, err := mcp.NewServer(version)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	server.SetRootCmd(cmd.Root())

	// Blocks until the client disconnects.
	return server.Run(commandContext(cmd))
}
