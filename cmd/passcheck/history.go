package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xmzio1/passcheck/internal/cli"
)

// historyCmd is the parent command for check-history operations
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Check history operations",
}

// historyListCmd lists check history entries
var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List check history entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		hist, err := requireHistory()
		if err != nil {
			return err
		}

		var since time.Time
		if historySince != "" {
			duration, err := parseDuration(historySince)
			if err != nil {
				return fmt.Errorf("invalid since format: %w", err)
			}
			since = time.Now().Add(-duration)
		}

		events, err := hist.List(historyLimit, since)
		if err != nil {
			return fmt.Errorf("failed to list history events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No history events found")
			return nil
		}

		for _, event := range events {
			// Format: TIMESTAMP SOURCE STRENGTH fp:FINGERPRINT
			fp := event.Fingerprint
			if len(fp) > 16 {
				fp = fp[:16] + "..."
			}
			fmt.Printf("%s %s %s len:%d score:%d fp:%s\n",
				event.Timestamp, event.Source, event.Strength, event.Length, event.Score, fp)
		}

		fmt.Printf("\nTotal: %d events\n", len(events))
		return nil
	},
}

// historyVerifyCmd verifies history integrity
var historyVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify check history HMAC chain integrity",
	RunE: func(cmd *cobra.Command, args []string) error {
		hist, err := requireHistory()
		if err != nil {
			return err
		}

		fmt.Println("Verifying check history integrity...")

		result, err := hist.Verify()
		if err != nil {
			return fmt.Errorf("failed to verify check history: %w", err)
		}

		if result.Valid {
			fmt.Printf("✓ History verified: %d records, chain intact\n", result.RecordsTotal)
		} else {
			fmt.Printf("✗ History verification FAILED\n")
			fmt.Printf("  Records total: %d\n", result.RecordsTotal)
			fmt.Printf("  Records verified: %d\n", result.RecordsVerified)
			fmt.Println("  Errors:")
			for _, e := range result.Errors {
				fmt.Printf("    - %s\n", e)
			}
			return fmt.Errorf("check history integrity check failed")
		}

		// Also output as JSON for machine parsing
		jsonResult, _ := json.Marshal(result)
		fmt.Printf("\nJSON: %s\n", string(jsonResult))

		return nil
	},
}

// historyExportCmd exports check history
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export check history to JSON or CSV format",
	RunE: func(cmd *cobra.Command, args []string) error {
		hist, err := requireHistory()
		if err != nil {
			return err
		}

		if historyExportFormat != "json" && historyExportFormat != "csv" {
			return fmt.Errorf("invalid format: %s (use 'json' or 'csv')", historyExportFormat)
		}

		var since, until time.Time
		if historyExportSince != "" {
			duration, err := parseDuration(historyExportSince)
			if err != nil {
				return fmt.Errorf("invalid since format: %w", err)
			}
			since = time.Now().Add(-duration)
		}
		if historyExportUntil != "" {
			until, err = time.Parse(time.RFC3339, historyExportUntil)
			if err != nil {
				return fmt.Errorf("invalid until format (use RFC 3339): %w", err)
			}
		}

		data, err := hist.Export(historyExportFormat, since, until)
		if err != nil {
			return fmt.Errorf("failed to export check history: %w", err)
		}

		if historyExportOutput != "" {
			// Keep exports inside the working directory, home, or /tmp.
			absPath, err := filepath.Abs(historyExportOutput)
			if err != nil {
				return fmt.Errorf("invalid output path: %w", err)
			}
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			homeDir, _ := os.UserHomeDir()
			validPrefixes := []string{cwd, homeDir, "/tmp"}
			isValid := false
			for _, prefix := range validPrefixes {
				if strings.HasPrefix(absPath, prefix) {
					isValid = true
					break
				}
			}
			if !isValid {
				return fmt.Errorf("output path must be within current directory, home directory, or /tmp")
			}

			if err := os.WriteFile(absPath, data, 0600); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Check history exported to %s\n", absPath)
		} else {
			os.Stdout.Write(data)
		}

		return nil
	},
}

// historyPruneCmd deletes old check history entries
var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old check history entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyPruneOlderThan == "" {
			return fmt.Errorf("--older-than flag is required")
		}

		duration, err := parseDuration(historyPruneOlderThan)
		if err != nil {
			return fmt.Errorf("invalid older-than format: %w", err)
		}

		hist, err := requireHistory()
		if err != nil {
			return err
		}

		if historyPruneDryRun {
			count, err := hist.PrunePreview(duration)
			if err != nil {
				return fmt.Errorf("failed to preview prune: %w", err)
			}
			fmt.Printf("Would delete %d history entries older than %s\n", count, historyPruneOlderThan)
			return nil
		}

		count, err := hist.PrunePreview(duration)
		if err != nil {
			return fmt.Errorf("failed to preview prune: %w", err)
		}
		if count == 0 {
			fmt.Println("No history entries to delete")
			return nil
		}

		if !historyPruneForce {
			if !cli.Confirm(fmt.Sprintf("Delete %d history entries older than %s", count, historyPruneOlderThan)) {
				fmt.Println("Aborted")
				return nil
			}
		}

		deleted, err := hist.Prune(duration)
		if err != nil {
			return fmt.Errorf("failed to prune check history: %w", err)
		}

		fmt.Printf("Deleted %d history entries\n", deleted)
		return nil
	},
}
