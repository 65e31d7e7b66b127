package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/xmzio1/passcheck/pkg/history"
	"github.com/xmzio1/passcheck/pkg/strength"
	"github.com/xmzio1/passcheck/pkg/wordlist"
)

// batchCmd grades many passwords at once
var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Check passwords from a file or stdin, one per line",
	Long: `Check every password in a file (or stdin when no file is given)
and print one result line per password plus a summary. Passwords are
not echoed back in batch output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := os.Stdin
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open input file: %w", err)
			}
			defer f.Close()
			input = f
		}

		lines, err := wordlist.ReadLines(input)
		if err != nil {
			return fmt.Errorf("failed to read passwords: %w", err)
		}
		if len(lines) == 0 {
			return fmt.Errorf("no passwords to check")
		}

		common := loadCommon()
		hist := openHistory(batchNoHistory)

		var bar *progressbar.ProgressBar
		if !batchJSON && len(lines) > 1 {
			bar = progressbar.NewOptions(len(lines),
				progressbar.OptionSetDescription("checking"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}

		reports := make([]strength.Report, 0, len(lines))
		historyFailed := false
		for _, password := range lines {
			r := strength.Grade(password, common)
			reports = append(reports, r)

			if hist != nil {
				if err := hist.Append(r, history.SourceBatch); err != nil && !historyFailed {
					// Warn once, keep checking.
					fmt.Fprintf(os.Stderr, "Warning: failed to record check history: %v\n", err)
					historyFailed = true
				}
			}
			if bar != nil {
				_ = bar.Add(1)
			}
		}

		if batchJSON {
			// Strip the cleartext passwords before emitting a file that
			// is likely to be saved somewhere.
			for i := range reports {
				reports[i].Password = ""
			}
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(reports)
		}

		tally := make(map[strength.Strength]int)
		for i, r := range reports {
			fmt.Printf("%4d: %-12s entropy %6.2f bits, score %d\n", i+1, r.Strength, r.EntropyBits, r.Score)
			tally[r.Strength]++
		}

		fmt.Printf("\nTotal: %d passwords\n", len(reports))
		for _, s := range []strength.Strength{strength.VeryStrong, strength.Strong, strength.Medium, strength.Weak} {
			if tally[s] > 0 {
				fmt.Printf("  %-12s %d\n", s, tally[s])
			}
		}
		return nil
	},
}
