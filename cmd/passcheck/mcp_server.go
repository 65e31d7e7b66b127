package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xmzio1/passcheck/internal/mcp"
)

var mcpNoHistory bool

func init() {
	mcpServerCmd.Flags().BoolVar(&mcpNoHistory, "no-history", false, "Do not record checks in the history")
	rootCmd.AddCommand(mcpServerCmd)
}

// mcpServerCmd starts the MCP server for AI coding assistant integration
var mcpServerCmd = &cobra.Command{
	Use:   "mcp-server",
	Short: "Start the MCP server for AI coding assistant integration",
	Long: `Start the MCP server that lets AI coding assistants check password
strength without the password ever being echoed back to them.

The server implements the Model Context Protocol (MCP) over stdio transport.

Available tools:
  - password_check:  Grade a password (masked echo only)
  - wordlist_stats:  Report dictionary availability

Example MCP configuration for Claude Code (~/.claude.json):
  {
    "mcpServers": {
      "passcheck": {
        "type": "stdio",
        "command": "/path/to/passcheck",
        "args": ["mcp-server"]
      }
    }
  }`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMCPServer()
	},
}

func runMCPServer() error {
	server, err := mcp.NewServer(&mcp.ServerOptions{
		BaseDir:   baseDir,
		NoHistory: mcpNoHistory,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	if err := server.Run(ctx); err != nil {
		// Don't report context canceled as an error
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}
