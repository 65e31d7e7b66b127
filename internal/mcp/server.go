// Package mcp implements the MCP (Model Context Protocol) server for
// passcheck. Tool results never echo the checked password back to the
// caller, only a masked form and the derived metrics.
package mcp

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/xmzio1/passcheck/internal/config"
	"github.com/xmzio1/passcheck/pkg/history"
	"github.com/xmzio1/passcheck/pkg/strength"
	"github.com/xmzio1/passcheck/pkg/wordlist"
)

// Server represents the MCP server for passcheck.
type Server struct {
	server  *mcp.Server
	common  strength.CommonSet
	history *history.Logger
	cfg     config.Config
}

// ServerOptions contains configuration options for the MCP server.
type ServerOptions struct {
	// BaseDir is the passcheck data directory.
	// If empty, defaults to ~/.passcheck
	BaseDir string

	// NoHistory disables check-history recording even when the
	// configuration enables it.
	NoHistory bool
}

// NewServer creates a new MCP server instance.
func NewServer(opts *ServerOptions) (*Server, error) {
	if opts == nil {
		opts = &ServerOptions{}
	}

	baseDir := opts.BaseDir
	if baseDir == "" {
		dir, err := config.BaseDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve base directory: %w", err)
		}
		baseDir = dir
	}

	cfg, err := config.Load(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// A missing or unreadable wordlist is not fatal. Checks still run,
	// they just skip the dictionary test.
	common := loadCommonSet(cfg)

	var hist *history.Logger
	if cfg.HistoryEnabled() && !opts.NoHistory {
		hist, err = history.New(cfg.HistoryPath)
		if err != nil {
			log.Printf("warning: check history unavailable: %v", err)
			hist = nil
		}
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "passcheck",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		server:  mcpServer,
		common:  common,
		history: hist,
		cfg:     cfg,
	}

	s.registerTools()

	return s, nil
}

// loadCommonSet loads the common-password set from the SQLite store if
// present, falling back to the configured wordlist file.
func loadCommonSet(cfg config.Config) strength.CommonSet {
	if cfg.StorePath != "" {
		if _, err := os.Stat(cfg.StorePath); err == nil {
			store, err := wordlist.Open(cfg.StorePath)
			if err != nil {
				log.Printf("warning: failed to open wordlist store: %v", err)
			} else {
				defer store.Close()
				set, err := store.LoadSet()
				if err != nil {
					log.Printf("warning: failed to load wordlist store: %v", err)
				} else if len(set) > 0 {
					return set
				}
			}
		}
	}

	if cfg.WordlistPath == "" {
		return nil
	}
	f, err := os.Open(cfg.WordlistPath)
	if err != nil {
		log.Printf("warning: failed to open wordlist: %v", err)
		return nil
	}
	defer f.Close()

	reader, err := wordlist.Decoder(f, cfg.WordlistEncoding)
	if err != nil {
		log.Printf("warning: %v", err)
		return nil
	}
	lines, err := wordlist.ReadLines(reader)
	if err != nil {
		log.Printf("warning: failed to read wordlist: %v", err)
		return nil
	}
	return strength.LoadCommonPasswords(lines)
}

// registerTools registers all MCP tools with the server.
func (s *Server) registerTools() {
	// password_check - Grade a password without echoing it back
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "password_check",
		Description: "Check the strength of a password. Returns entropy, score, strength label, detected issues, and suggestions. The password itself is only echoed back in masked form (e.g., '****WXYZ').",
	}, s.handlePasswordCheck)

	// wordlist_stats - Report dictionary availability
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "wordlist_stats",
		Description: "Report whether a common-password dictionary is loaded and how many entries it contains.",
	}, s.handleWordlistStats)
}

// Run starts the MCP server using stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
