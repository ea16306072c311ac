package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/prettify/prettify/internal/format"
	"github.com/prettify/prettify/internal/language"
	"github.com/prettify/prettify/internal/report"
)

var (
	formatStdout        bool
	formatParser        string
	formatStdinFilepath string
)

// stdinIsTerminal is a variable to allow overriding in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// formatCmd represents the format command
var formatCmd = &cobra.Command{
	Use:   "format [files...]",
	Short: "Format files with prettier",
	Long: `Format files in place with prettier.

With no file arguments, source text is read from stdin and the
formatted result is written to stdout. Use --stdin-filepath (or
--parser) so prettier knows what it is formatting.

Exit codes:
  0 - Files formatted or already formatted
  1 - Settings, resolution or prettier error`,
	Example: `  # Format files in place
  prettify format src/app.js src/styles.css

  # Print the result instead of rewriting the file
  prettify format --stdout src/app.js

  # Format stdin
  cat src/app.js | prettify format --stdin-filepath src/app.js

  # Force a parser for an unrecognized extension
  prettify format --parser typescript build/generated.mts`,
	RunE: runFormat,
}

func init() {
	rootCmd.AddCommand(formatCmd)
	formatCmd.Flags().BoolVar(&formatStdout, "stdout", false, "Write results to stdout instead of rewriting files")
	formatCmd.Flags().StringVar(&formatParser, "parser", "", "Force a prettier parser")
	formatCmd.Flags().StringVar(&formatStdinFilepath, "stdin-filepath", "", "Path the stdin content belongs to, for parser inference")
}

func runFormat(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && stdinIsTerminal() {
		return fmt.Errorf("no files to format and stdin is a terminal; pass file arguments or pipe source text in")
	}

	s, err := loadSettings()
	if err != nil {
		return err
	}

	formatter, err := format.New(s)
	if err != nil {
		return err
	}
	reporter := report.NewReporter()

	if len(args) == 0 {
		return formatStdin(formatter, reporter)
	}

	files, err := expandPaths(args, s.CustomFileExtensions)
	if err != nil {
		return err
	}

	summary := &report.Summary{}
	for _, path := range files {
		formatOne(formatter, reporter, summary, path)
	}
	summary.Print(reporter)

	if summary.Failed > 0 {
		osExit(1)
	}
	return nil
}

// formatStdin reads the whole of stdin, formats it and writes the
// result to stdout.
func formatStdin(formatter *format.Formatter, reporter *report.Reporter) error {
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	sourcePath := formatStdinFilepath
	if sourcePath != "" {
		if abs, err := filepath.Abs(sourcePath); err == nil {
			sourcePath = abs
		}
	}

	result, err := formatter.FormatSource(src, sourcePath, formatParser)
	if err != nil {
		reportFormatError(reporter, "stdin", err)
		osExit(1)
		return nil
	}
	if result.Outcome == format.OutcomeNothing {
		reporter.Statusf("Nothing to format.")
		return nil
	}

	_, err = os.Stdout.Write(result.Output)
	return err
}

// formatOne formats a single file and records the outcome.
func formatOne(formatter *format.Formatter, reporter *report.Reporter, summary *report.Summary, path string) {
	if formatParser == "" && !language.IsFormattable(path, formatter.Settings().CustomFileExtensions) {
		reporter.Warnf("%s: not a formattable file type.", path)
		summary.Skipped++
		return
	}

	result, err := formatter.FormatFile(path, !formatStdout, formatParser)
	if err != nil {
		reportFormatError(reporter, path, err)
		summary.Failed++
		return
	}

	if formatStdout && result.Output != nil {
		_, _ = os.Stdout.Write(result.Output)
	}

	switch result.Outcome {
	case format.OutcomeFormatted, format.OutcomeNewlineOnly:
		reporter.Successf("%s: formatted.", path)
		summary.Formatted++
	case format.OutcomeUnchanged:
		reporter.Statusf("%s: already formatted.", path)
		summary.Unchanged++
	case format.OutcomeNothing:
		reporter.Statusf("%s: nothing to format.", path)
		summary.Skipped++
	case format.OutcomeSkippedSize:
		reporter.Warnf("%s: maximum file size reached.", path)
		summary.Skipped++
	}
}

// reportFormatError prints the full error report followed by the
// status line.
func reportFormatError(reporter *report.Reporter, path string, err error) {
	var runErr *format.RunError
	if errors.As(err, &runErr) {
		fmt.Fprintln(os.Stderr, runErr.Error())
		if runErr.Syntax != nil {
			reporter.Errorf("%s: %s", path, runErr.Syntax.Error())
		}
		reporter.Errorf("Format failed! See error output above.")
		return
	}
	reporter.Errorf("%s: %v", path, err)
}
