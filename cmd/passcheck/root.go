package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/xmzio1/passcheck/internal/config"
	"github.com/xmzio1/passcheck/pkg/history"
	"github.com/xmzio1/passcheck/pkg/strength"
	"github.com/xmzio1/passcheck/pkg/wordlist"
)

var (
	baseDir string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "passcheck",
	Short: "passcheck is a heuristic password strength checker",
	Long:  `A fast password strength checker built with Go.`,
	// PersistentPreRunE runs before the root command and all subcommands.
	// This resolves the data directory and loads the configuration.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "completion" {
			return nil
		}

		dir, err := config.BaseDir()
		if err != nil {
			return fmt.Errorf("failed to resolve base directory: %w", err)
		}
		baseDir = dir

		cfg, err = config.Load(baseDir)
		if err != nil {
			return err
		}
		return nil
	},
}

// Wordlist flags shared by check, batch, and the MCP server
var (
	flagWordlist string
	flagEncoding string
	flagStore    string
	flagNoColor  bool
)

// Check flags
var (
	checkJSON      bool
	checkNoHistory bool
)

// Batch flags
var (
	batchJSON      bool
	batchNoHistory bool
)

// Wordlist import flags
var (
	importEncoding string
	importReplace  bool
	importForce    bool
)

// History list flags
var (
	historyLimit int
	historySince string
)

// History export flags
var (
	historyExportFormat string
	historyExportSince  string
	historyExportUntil  string
	historyExportOutput string
)

// History prune flags
var (
	historyPruneOlderThan string
	historyPruneDryRun    bool
	historyPruneForce     bool
)

func init() {
	// Add subcommands to rootCmd
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(wordlistCmd)
	rootCmd.AddCommand(historyCmd)

	// Wordlist source flags apply to every command that grades passwords
	rootCmd.PersistentFlags().StringVar(&flagWordlist, "common", "", "Path to a common-passwords file (one per line)")
	rootCmd.PersistentFlags().StringVar(&flagEncoding, "encoding", "", "Wordlist file encoding: utf8, latin1, utf16")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "Path to the imported wordlist store")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")

	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output the report as JSON")
	checkCmd.Flags().BoolVar(&checkNoHistory, "no-history", false, "Do not record this check in the history")

	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "Output reports as a JSON array")
	batchCmd.Flags().BoolVar(&batchNoHistory, "no-history", false, "Do not record these checks in the history")

	// Add wordlist subcommands
	wordlistCmd.AddCommand(wordlistImportCmd)
	wordlistCmd.AddCommand(wordlistStatsCmd)

	wordlistImportCmd.Flags().StringVar(&importEncoding, "encoding", "", "Wordlist file encoding: utf8, latin1, utf16")
	wordlistImportCmd.Flags().BoolVar(&importReplace, "replace", false, "Clear the store before importing")
	wordlistImportCmd.Flags().BoolVarP(&importForce, "force", "f", false, "Skip confirmation prompt")

	// Add history subcommands
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyVerifyCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyPruneCmd)

	historyListCmd.Flags().IntVar(&historyLimit, "limit", 100, "Maximum number of events to show")
	historyListCmd.Flags().StringVar(&historySince, "since", "", "Show events since duration (e.g., 24h)")

	historyExportCmd.Flags().StringVar(&historyExportFormat, "format", "json", "Output format: json, csv")
	historyExportCmd.Flags().StringVar(&historyExportSince, "since", "", "Export events since duration (e.g., 30d)")
	historyExportCmd.Flags().StringVar(&historyExportUntil, "until", "", "Export events until date (RFC 3339)")
	historyExportCmd.Flags().StringVarP(&historyExportOutput, "output", "o", "", "Output file path (default: stdout)")

	historyPruneCmd.Flags().StringVar(&historyPruneOlderThan, "older-than", "", "Delete events older than duration (e.g., 12m for 12 months)")
	historyPruneCmd.Flags().BoolVar(&historyPruneDryRun, "dry-run", false, "Show what would be deleted without deleting")
	historyPruneCmd.Flags().BoolVarP(&historyPruneForce, "force", "f", false, "Skip confirmation prompt")
}

// storePath resolves the wordlist store location from flag or config.
func storePath() string {
	if flagStore != "" {
		return flagStore
	}
	return cfg.StorePath
}

// noColor reports whether colored output is disabled.
func noColor() bool {
	return flagNoColor || cfg.NoColor
}

// loadCommon assembles the common-password set. Precedence: the
// --common file, then the wordlist store, then the configured wordlist
// file. A missing or unreadable wordlist only degrades the check, so
// failures warn on stderr instead of aborting.
func loadCommon() strength.CommonSet {
	if flagWordlist != "" {
		set, err := loadWordlistFile(flagWordlist, flagEncoding)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (dictionary check skipped)\n", err)
			return nil
		}
		return set
	}

	if path := storePath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			store, err := wordlist.Open(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to open wordlist store: %v\n", err)
			} else {
				defer store.Close()
				set, err := store.LoadSet()
				if err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to load wordlist store: %v\n", err)
				} else if len(set) > 0 {
					return set
				}
			}
		}
	}

	if cfg.WordlistPath != "" {
		set, err := loadWordlistFile(cfg.WordlistPath, cfg.WordlistEncoding)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (dictionary check skipped)\n", err)
			return nil
		}
		return set
	}

	return nil
}

// loadWordlistFile reads a wordlist file into a common-password set.
func loadWordlistFile(path, encoding string) (strength.CommonSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open wordlist %s: %w", path, err)
	}
	defer f.Close()

	reader, err := wordlist.Decoder(f, encoding)
	if err != nil {
		return nil, err
	}
	lines, err := wordlist.ReadLines(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read wordlist %s: %w", path, err)
	}
	return strength.LoadCommonPasswords(lines), nil
}

// openHistory opens the check history, or returns nil when history is
// disabled. Open failures warn instead of aborting, a check is still
// useful without its log entry.
func openHistory(disabled bool) *history.Logger {
	if disabled || !cfg.HistoryEnabled() {
		return nil
	}
	l, err := history.New(cfg.HistoryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: check history unavailable: %v\n", err)
		return nil
	}
	return l
}

// requireHistory opens the check history for the history subcommands,
// where an unavailable log is an error rather than a degradation.
func requireHistory() (*history.Logger, error) {
	if !cfg.HistoryEnabled() {
		return nil, fmt.Errorf("check history is disabled in %s", config.FileName)
	}
	l, err := history.New(cfg.HistoryPath)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// parseDuration parses a duration string like "30d", "1y", "24h"
func parseDuration(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("duration too short: %s", s)
	}

	unit := s[len(s)-1]
	valueStr := s[:len(s)-1]

	var value int
	if _, err := fmt.Sscanf(valueStr, "%d", &value); err != nil {
		return 0, fmt.Errorf("invalid duration value: %s", valueStr)
	}

	switch unit {
	case 'h':
		return time.Duration(value) * time.Hour, nil
	case 'd':
		return time.Duration(value) * 24 * time.Hour, nil
	case 'w':
		return time.Duration(value) * 7 * 24 * time.Hour, nil
	case 'm':
		return time.Duration(value) * 30 * 24 * time.Hour, nil
	case 'y':
		return time.Duration(value) * 365 * 24 * time.Hour, nil
	default:
		// Try standard time.ParseDuration
		return time.ParseDuration(s)
	}
}
