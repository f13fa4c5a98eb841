package mcp

import (
	"context"
	"log/slog"

	"github.com/CSCSoftware/woohoo/woo"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with the WooCommerce client.
type Server struct {
	mcpServer *mcp.Server
	store     *woo.Client
	logger    *slog.Logger
}

// NewServer creates an MCP server with all WooCommerce tools, resources and
// prompts registered. Registration happens once here; the SDK rejects
// duplicate names, so a bad tool table fails before the server starts.
func NewServer(store *woo.Client, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		store:  store,
		logger: logger,
	}

	s.mcpServer = mcp.NewServer(&mcp.Implementation{
		Name:    "woocommerce",
		Version: "1.0.0",
	}, nil)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()
	return s
}

// Run starts the MCP server on stdio (blocking).
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
