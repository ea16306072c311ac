// Package main provides man page generation for prettify
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

var manDir string

// manCmd represents the man command
var manCmd = &cobra.Command{
	Use:   "man",
	Short: "Generate man pages for prettify",
	Long: `Generate man pages for prettify and all its subcommands.

The generated man pages follow the standard man page format and can be
installed system-wide.`,
	Example: `  # Generate man pages in the current directory
  prettify man

  # Generate man pages in a specific directory
  prettify man --dir ./docs/man

  # Install system-wide
  sudo cp ./docs/man/*.1 /usr/local/share/man/man1/
  sudo mandb`,
	RunE: runGenerateMan,
}

func init() {
	manCmd.Flags().StringVar(&manDir, "dir", ".", "Directory to write man pages to")
	rootCmd.AddCommand(manCmd)
}

func runGenerateMan(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(manDir, 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	header := &doc.GenManHeader{
		Title:   "PRETTIFY",
		Section: "1",
		Source:  fmt.Sprintf("prettify %s", Version),
		Manual:  "Prettify Manual",
	}

	if err := doc.GenManTree(cmd.Root(), header, manDir); err != nil {
		return fmt.Errorf("failed to generate man pages: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(manDir, "*.1"))
	if err != nil {
		return fmt.Errorf("failed to list generated files: %w", err)
	}

	fmt.Printf("Man pages generated in: %s\n", manDir)
	for _, file := range files {
		fmt.Printf("  %s\n", filepath.Base(file))
	}
	return nil
}
