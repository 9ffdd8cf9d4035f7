package main

import (
	"github.com/spf13/cobra"

	"github.com/ipdlab/dilemma/internal/mcpserver"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Run as an MCP server over stdio",
		Long: `Starts a Model Context Protocol server on stdin/stdout, exposing the
tournament engine as tools (dilemma_run, dilemma_strategies) for agent
clients. Blocks until the client disconnects.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := mcpserver.NewServer(&mcpserver.Config{
				Name:    "dilemma",
				Version: version,
			})
			return srv.Run(cmd.Context())
		},
	}
}
