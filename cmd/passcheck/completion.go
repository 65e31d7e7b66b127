package main

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate completion script for your shell",
	Long: `To load completions:

Bash:
  $ source <(passcheck completion bash)

  # To load for each session (Linux):
  $ passcheck completion bash > ~/.local/share/bash-completion/completions/passcheck

  # To load for each session (macOS with Homebrew):
  $ passcheck completion bash > $(brew --prefix)/etc/bash_completion.d/passcheck

Zsh:
  # Ensure completion is enabled:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # Generate completion:
  $ passcheck completion zsh > ~/.zsh/completions/_passcheck
  # (create ~/.zsh/completions if needed, add to fpath in .zshrc)

Fish:
  $ passcheck completion fish > ~/.config/fish/completions/passcheck.fish

PowerShell:
  PS> passcheck completion powershell >> $PROFILE
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
