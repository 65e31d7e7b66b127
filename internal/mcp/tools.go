package mcp

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/xmzio1/passcheck/pkg/history"
	"github.com/xmzio1/passcheck/pkg/strength"
)

// PasswordCheckInput represents input for the password_check tool.
type PasswordCheckInput struct {
	Password string `json:"password"`

	// UseWordlist disables the dictionary check when explicitly false.
	// Omitted means true.
	UseWordlist *bool `json:"use_wordlist,omitempty"`
}

// PasswordCheckOutput represents output for the password_check tool.
// The password only appears in masked form.
type PasswordCheckOutput struct {
	MaskedPassword string   `json:"masked_password"`
	Length         int      `json:"length"`
	EntropyBits    float64  `json:"entropy_bits"`
	Score          int      `json:"score_metric"`
	Strength       string   `json:"strength"`
	Issues         []string `json:"issues"`
	Suggestions    []string `json:"suggestions"`
	Common         bool     `json:"common"`
}

// WordlistStatsInput represents input for the wordlist_stats tool.
type WordlistStatsInput struct{}

// WordlistStatsOutput represents output for the wordlist_stats tool.
type WordlistStatsOutput struct {
	Loaded    bool   `json:"loaded"`
	Entries   int    `json:"entries"`
	StorePath string `json:"store_path,omitempty"`
}

// handlePasswordCheck handles the password_check tool call.
func (s *Server) handlePasswordCheck(_ context.Context, _ *mcp.CallToolRequest, input PasswordCheckInput) (*mcp.CallToolResult, PasswordCheckOutput, error) {
	if input.Password == "" {
		return nil, PasswordCheckOutput{}, fmt.Errorf("password is required")
	}

	common := s.common
	if input.UseWordlist != nil && !*input.UseWordlist {
		common = nil
	}
	r := strength.Grade(input.Password, common)

	if s.history != nil {
		if err := s.history.Append(r, history.SourceMCP); err != nil {
			// History failures never block the check result.
			log.Printf("warning: failed to record check history: %v", err)
		}
	}

	return nil, PasswordCheckOutput{
		MaskedPassword: maskPassword(input.Password),
		Length:         r.Length,
		EntropyBits:    r.EntropyBits,
		Score:          r.Score,
		Strength:       r.Strength.String(),
		Issues:         r.Issues,
		Suggestions:    r.Suggestions,
		Common:         common.Contains(input.Password),
	}, nil
}

// handleWordlistStats handles the wordlist_stats tool call.
func (s *Server) handleWordlistStats(_ context.Context, _ *mcp.CallToolRequest, _ WordlistStatsInput) (*mcp.CallToolResult, WordlistStatsOutput, error) {
	return nil, WordlistStatsOutput{
		Loaded:    len(s.common) > 0,
		Entries:   len(s.common),
		StorePath: s.cfg.StorePath,
	}, nil
}

// maskPassword masks a password for tool output.
// | Length  | Format          | Example   |
// |---------|-----------------|-----------|
// | 1-4     | All *           | ****      |
// | 5-8     | Show last 2     | ******XY  |
// | 9+      | Show last 4     | ****WXYZ  |
func maskPassword(password string) string {
	runes := []rune(password)
	length := len(runes)
	if length == 0 {
		return ""
	}

	switch {
	case length <= 4:
		return strings.Repeat("*", length)
	case length <= 8:
		return strings.Repeat("*", length-2) + string(runes[length-2:])
	default:
		return strings.Repeat("*", length-4) + string(runes[length-4:])
	}
}
