// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the tournament engine over stdio, so agent tooling can run
// simulations and inspect the built-in strategies.
package mcpserver

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP SDK server with the dilemma tools.
type Server struct {
	server *sdk.Server
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g., "dilemma")
	Version string // Server version
}

// NewServer creates a new MCP server with the dilemma tools registered.
func NewServer(cfg *Config) *Server {
	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	s := &Server{server: mcpServer}
	s.registerTools()
	return s
}

// Run starts the MCP server over stdio transport.
// This blocks until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	return s.server.Run(ctx, &sdk.StdioTransport{})
}

// registerTools registers all dilemma MCP tools with the server.
func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "dilemma_run",
		Description: "Run an iterated prisoner's dilemma round-robin tournament and return the ranked standings",
	}, s.handleRun)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "dilemma_strategies",
		Description: "List the built-in strategies with their labels and descriptions",
	}, s.handleStrategies)
}
