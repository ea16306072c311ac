// Package main provides shell completion commands for prettify
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for prettify.

To load completions:

BASH:
  # Linux:
  $ prettify completion bash > /etc/bash_completion.d/prettify

  # macOS:
  $ prettify completion bash > $(brew --prefix)/etc/bash_completion.d/prettify

  # Per-session:
  $ source <(prettify completion bash)

ZSH:
  # To load completions for each session, execute once:
  $ prettify completion zsh > "${fpath[1]}/_prettify"

  # Or for oh-my-zsh users:
  $ prettify completion zsh > ~/.oh-my-zsh/completions/_prettify

FISH:
  $ prettify completion fish | source

  # To load completions for each session, execute once:
  $ prettify completion fish > ~/.config/fish/completions/prettify.fish

POWERSHELL:
  PS> prettify completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			if err := cmd.Root().GenBashCompletion(os.Stdout); err != nil {
				return fmt.Errorf("failed to generate bash completion: %w", err)
			}
		case "zsh":
			if err := cmd.Root().GenZshCompletion(os.Stdout); err != nil {
				return fmt.Errorf("failed to generate zsh completion: %w", err)
			}
		case "fish":
			if err := cmd.Root().GenFishCompletion(os.Stdout, true); err != nil {
				return fmt.Errorf("failed to generate fish completion: %w", err)
			}
		case "powershell":
			if err := cmd.Root().GenPowerShellCompletion(os.Stdout); err != nil {
				return fmt.Errorf("failed to generate powershell completion: %w", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
