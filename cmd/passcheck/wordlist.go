package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/xmzio1/passcheck/internal/cli"
	"github.com/xmzio1/passcheck/pkg/wordlist"
)

// wordlistCmd is the parent command for wordlist operations
var wordlistCmd = &cobra.Command{
	Use:   "wordlist",
	Short: "Manage the common-password wordlist store",
}

// wordlistImportCmd imports a wordlist file into the store
var wordlistImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a wordlist file into the local store",
	Long: `Import a common-passwords file (one entry per line) into the
local SQLite store. Each entry is stored together with its lowercase
form so dictionary checks are case-insensitive. Re-importing the same
file is safe, existing entries are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := storePath()
		if path == "" {
			return fmt.Errorf("no store path configured")
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open wordlist file: %w", err)
		}
		defer f.Close()

		reader, err := wordlist.Decoder(f, importEncoding)
		if err != nil {
			return err
		}
		lines, err := wordlist.ReadLines(reader)
		if err != nil {
			return fmt.Errorf("failed to read wordlist file: %w", err)
		}
		if len(lines) == 0 {
			return fmt.Errorf("wordlist file is empty")
		}

		store, err := wordlist.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open wordlist store: %w", err)
		}
		defer store.Close()

		if importReplace {
			existing, err := store.Count()
			if err != nil {
				return fmt.Errorf("failed to count store entries: %w", err)
			}
			if existing > 0 && !importForce {
				if !cli.Confirm(fmt.Sprintf("Replace %d existing entries in %s", existing, path)) {
					fmt.Println("Aborted")
					return nil
				}
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear store: %w", err)
			}
		}

		bar := progressbar.NewOptions(len(lines),
			progressbar.OptionSetDescription("importing"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)

		added, err := store.Import(lines, func() { _ = bar.Add(1) })
		if err != nil {
			return fmt.Errorf("failed to import wordlist: %w", err)
		}

		total, err := store.Count()
		if err != nil {
			return fmt.Errorf("failed to count store entries: %w", err)
		}

		fmt.Printf("Imported %d new entries (%d total) into %s\n", added, total, path)
		return nil
	},
}

// wordlistStatsCmd reports store statistics
var wordlistStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show wordlist store statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := storePath()
		if path == "" {
			return fmt.Errorf("no store path configured")
		}
		if _, err := os.Stat(path); err != nil {
			fmt.Printf("Store: %s (not created yet, run 'passcheck wordlist import')\n", path)
			return nil
		}

		store, err := wordlist.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open wordlist store: %w", err)
		}
		defer store.Close()

		count, err := store.Count()
		if err != nil {
			return fmt.Errorf("failed to count store entries: %w", err)
		}

		fmt.Printf("Store: %s\n", path)
		fmt.Printf("Entries: %d\n", count)
		return nil
	},
}
