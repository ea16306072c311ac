// Package main is the entry point for the prettify CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prettify/prettify/internal/debug"
	internalsettings "github.com/prettify/prettify/internal/settings"
	pkgsettings "github.com/prettify/prettify/pkg/settings"
)

// Version is set at build time via ldflags
var Version = "dev"

// Global flags
var (
	debugFlag    bool
	settingsPath string
)

// osExit is a variable to allow mocking os.Exit in tests
var osExit = os.Exit

// newRootCmd creates and returns the root command
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prettify",
		Short: "Format code with prettier",
		Long: `Prettify is a command-line wrapper around the prettier code formatter.

It resolves the prettier binary and config file for each source file,
assembles the CLI arguments from your settings, runs prettier over stdin
and writes the result back in place.

GETTING STARTED:
  1. Create a settings file for your project (optional):
     $ prettify config init

  2. Format files:
     $ prettify format src/app.js

  3. Keep a tree formatted while you work:
     $ prettify watch .

SETTINGS:
  Settings are layered: built-in defaults, then ~/.prettify.json, then
  the nearest .prettify.json walking up from the working directory.
  A prettier config file (.prettierrc and friends) always takes
  precedence over mapped options.

EXAMPLES:
  # Format files in place
  $ prettify format src/app.js src/app.css

  # Format stdin to stdout
  $ cat src/app.js | prettify format --stdin-filepath src/app.js

  # See which files would change
  $ prettify check src/

  # Format on save
  $ prettify watch .

  # Show the effective settings and resolved paths
  $ prettify config show`,
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debugFlag {
				debug.Enable()
			}
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug output")
	cmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "Path to settings file")

	// Disable the default completion command; we ship our own
	cmd.CompletionOptions.DisableDefaultCmd = true

	return cmd
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func main() {
	// Parse global flags early to enable debug logging
	for i := 1; i < len(os.Args); i++ {
		if os.Args[i] == "--debug" {
			debug.Enable()
			break
		}
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadSettings resolves the effective settings, honoring the global
// --settings flag.
func loadSettings() (*pkgsettings.Settings, error) {
	loader := internalsettings.NewLoader()
	var (
		s   *pkgsettings.Settings
		err error
	)
	if settingsPath != "" {
		s, err = loader.LoadFromPath(settingsPath)
	} else {
		s, err = loader.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if s.Debug {
		debug.Enable()
	}
	return s, nil
}
