package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/prettify/prettify/internal/format"
	"github.com/prettify/prettify/internal/report"
	"github.com/prettify/prettify/internal/watcher"
)

var watchForce bool

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Format files as they are saved",
	Long: `Watch a directory tree and format files in place as they change.

This is the format-on-save mode: every write to a formattable file is
debounced and then run through prettier. Files matching
auto_format_on_save_excludes, oversized files, and (optionally) files
without a prettier config are left alone.

The auto_format_on_save setting must be enabled, or pass --force.`,
	Example: `  # Watch the current project
  prettify watch .

  # Watch a subtree regardless of settings
  prettify watch --force src/`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchForce, "force", false, "Watch even when auto_format_on_save is disabled")
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	if !s.AutoFormatOnSave && !watchForce {
		return fmt.Errorf("auto_format_on_save is disabled in settings; enable it or pass --force")
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	formatter, err := format.New(s)
	if err != nil {
		return err
	}
	reporter := report.NewReporter()

	w, err := watcher.New(dir, s, func(path string) {
		result, err := formatter.FormatFile(path, true, "")
		if err != nil {
			reportFormatError(reporter, path, err)
			return
		}
		switch result.Outcome {
		case format.OutcomeFormatted, format.OutcomeNewlineOnly:
			reporter.Successf("%s: formatted.", path)
		case format.OutcomeUnchanged:
			reporter.Statusf("%s: already formatted.", path)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	w.OnError = func(err error) {
		reporter.Warnf("watch error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w.Start(ctx)
	reporter.Statusf("Watching %s for changes. Press Ctrl-C to stop.", dir)

	<-ctx.Done()
	w.Stop()
	reporter.Statusf("Stopped.")
	return nil
}
