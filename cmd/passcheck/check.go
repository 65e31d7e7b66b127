package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xmzio1/passcheck/internal/cli"
	"github.com/xmzio1/passcheck/pkg/history"
	"github.com/xmzio1/passcheck/pkg/report"
	"github.com/xmzio1/passcheck/pkg/strength"
)

// checkCmd grades a single password
var checkCmd = &cobra.Command{
	Use:   "check [password]",
	Short: "Check the strength of a password",
	Long: `Check the strength of a password and print a report.

The password can be passed as an argument or entered at a hidden
prompt. Prefer the prompt: arguments end up in shell history.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var password string
		if len(args) == 1 {
			password = args[0]
		} else {
			var err error
			password, err = cli.PromptPassword("Enter password to check: ")
			if err != nil {
				return err
			}
		}
		if password == "" {
			return fmt.Errorf("no password provided")
		}

		common := loadCommon()
		r := strength.Grade(password, common)

		if hist := openHistory(checkNoHistory); hist != nil {
			if err := hist.Append(r, history.SourceCLI); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to record check history: %v\n", err)
			}
		}

		if checkJSON {
			return report.WriteJSON(os.Stdout, r)
		}
		report.WriteText(os.Stdout, r, report.Options{NoColor: noColor()})
		return nil
	},
}
