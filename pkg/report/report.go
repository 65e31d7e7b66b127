// Package report renders grading results for humans and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/xmzio1/passcheck/pkg/strength"
)

// Options controls text rendering.
type Options struct {
	// NoColor disables ANSI colors regardless of terminal detection.
	NoColor bool
}

// WriteText writes a human-readable check report.
func WriteText(w io.Writer, r strength.Report, opts Options) {
	label := labelColor(r.Strength)
	issueColor := color.New(color.FgRed)
	if opts.NoColor {
		label.DisableColor()
		issueColor.DisableColor()
	}

	fmt.Fprintln(w, "=== Password Check Report ===")
	fmt.Fprintf(w, "Entered password: %s\n", r.Password)
	fmt.Fprintf(w, "Length: %d  |  Entropy estimate: %.2f bits\n", r.Length, r.EntropyBits)
	fmt.Fprintf(w, "Overall assessment: %s  |  Internal metric: %d\n",
		label.Sprint(r.Strength), r.Score)

	if len(r.Issues) > 0 {
		fmt.Fprintln(w, "\nDetected issues:")
		for _, issue := range r.Issues {
			fmt.Fprintf(w, " - %s\n", issueColor.Sprint(issue))
		}
	} else {
		fmt.Fprintln(w, "\nNo major issues detected.")
	}

	fmt.Fprintln(w, "\nSuggestions to improve your password:")
	for _, s := range r.Suggestions {
		fmt.Fprintf(w, " - %s\n", s)
	}
	fmt.Fprintln(w, "=============================")
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, r strength.Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("report: failed to marshal: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("report: failed to write: %w", err)
	}
	return nil
}

// labelColor picks the color for a strength verdict.
func labelColor(s strength.Strength) *color.Color {
	switch s {
	case strength.VeryStrong:
		return color.New(color.FgGreen, color.Bold)
	case strength.Strong:
		return color.New(color.FgGreen)
	case strength.Medium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}
