package main

import (
	"github.com/spf13/cobra"

	"github.com/prettify/prettify/internal/format"
	"github.com/prettify/prettify/internal/language"
	"github.com/prettify/prettify/internal/report"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Check whether files are formatted",
	Long: `Run prettier without writing anything and report which files would
change.

Exit codes:
  0 - All files already formatted
  1 - Settings, resolution or prettier error
  2 - At least one file would be reformatted`,
	Example: `  # Check files before committing
  prettify check src/app.js src/app.css

  # CI usage
  prettify check $(git ls-files '*.js') || exit 2`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	formatter, err := format.New(s)
	if err != nil {
		return err
	}
	reporter := report.NewReporter()

	files, err := expandPaths(args, s.CustomFileExtensions)
	if err != nil {
		return err
	}

	summary := &report.Summary{}
	for _, path := range files {
		if !language.IsFormattable(path, s.CustomFileExtensions) {
			reporter.Warnf("%s: not a formattable file type.", path)
			summary.Skipped++
			continue
		}

		changed, err := formatter.CheckFile(path)
		if err != nil {
			reportFormatError(reporter, path, err)
			summary.Failed++
			continue
		}
		if changed {
			reporter.Warnf("%s: would be reformatted.", path)
			summary.Formatted++
		} else {
			summary.Unchanged++
		}
	}

	switch {
	case summary.Failed > 0:
		osExit(1)
	case summary.Formatted > 0:
		reporter.Statusf("%d of %d files would be reformatted.", summary.Formatted, summary.Total())
		osExit(2)
	default:
		reporter.Successf("All files are formatted.")
	}
	return nil
}
