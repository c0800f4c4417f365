// Package mcp provides the MCP (Model Context Protocol) server implementation.
//
// This package implements an MCP server that exposes the ccxp tools as
// tools that can be called by AI agents via the MCP protocol.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/B16B1RD/cc-xp-kit/pkg/ccxp"
)

// Server wraps the MCP server with ccxp-specific functionality.
type Server struct {
	mcpServer *mcp.Server
	client    *ccxp.Client
	version   string
	rootCmd   *cobra.Command
}

// NewServer creates a new ccxp MCP server.
//
// Parameters:
//   - version: The CLI version string
//   - opts: Client options (defaults to the current directory)
//
// Returns:
//   - *Server: A new server instance
//   - error: Any error that occurred loading configuration
func NewServer(version string, opts ...ccxp.Option) (*Server, error) {
	client, err := ccxp.NewClient(opts...)
	if err != nil {
		return nil, err
	}

	s := &Server{
		client:  client,
		version: version,
	}

	s.mcpServer = mcp.NewServer(
		&mcp.Implementation{
			Name:    "ccxp",
			Version: version,
		},
		nil,
	)

	s.registerTools()

	return s, nil
}

// SetRootCmd sets the root Cobra command for schema generation.
//
// Parameters:
//   - cmd: The root Cobra command
func (s *Server) SetRootCmd(cmd *cobra.Command) {
	s.rootCmd = cmd
}

// Run starts the MCP server over stdio.
//
// Parameters:
//   - ctx: Context for cancellation
//
// Returns:
//   - error: Any error that occurred during execution
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// registerTools registers all ccxp tools with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "extract_criteria",
		Description: "Extract GIVEN/WHEN/THEN acceptance criteria from a user stories document and detect its project category (game, web, api, generic).",
	}, s.handleExtractCriteria)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "generate_test_stubs",
		Description: "Generate a JavaScript acceptance test suite with one failing stub per acceptance criterion. Optionally writes it to the configured tests directory, backing up any existing suite.",
	}, s.handleGenerateTestStubs)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "recommend_strategy",
		Description: "Recommend a Kent Beck TDD strategy (Fake It, Triangulation, Obvious Implementation) for a feature description.",
	}, s.handleRecommendStrategy)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "render_strategy_template",
		Description: "Render the code template for a TDD strategy and feature description.",
	}, s.handleRenderStrategyTemplate)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "patch_stories",
		Description: "Idempotently apply an MVP fix set (missing features, acceptance criteria, implementation order) to a user stories document and record today's validation status. Use dry_run to preview the diff.",
	}, s.handlePatchStories)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_schema",
		Description: "Get the complete CLI command schema and the user stories document format for LLM reference.",
	}, s.handleGetSchema)
}
