// Package report renders status messages and run summaries, the CLI
// analog of the editor's status bar.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Reporter writes single-line status messages. Color is used only when
// the destination is a terminal.
type Reporter struct {
	out     io.Writer
	colored bool
}

// NewReporter creates a reporter writing to stderr, with color when
// stderr is a terminal.
func NewReporter() *Reporter {
	return &Reporter{
		out:     os.Stderr,
		colored: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// NewReporterTo creates an uncolored reporter for a specific writer.
// Used in tests.
func NewReporterTo(w io.Writer) *Reporter {
	return &Reporter{out: w}
}

// Statusf writes a plain status line.
func (r *Reporter) Statusf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Successf writes a green status line.
func (r *Reporter) Successf(format string, args ...interface{}) {
	r.writeColored(color.FgGreen, format, args...)
}

// Warnf writes a yellow status line.
func (r *Reporter) Warnf(format string, args ...interface{}) {
	r.writeColored(color.FgYellow, format, args...)
}

// Errorf writes a red status line.
func (r *Reporter) Errorf(format string, args ...interface{}) {
	r.writeColored(color.FgRed, format, args...)
}

func (r *Reporter) writeColored(attr color.Attribute, format string, args ...interface{}) {
	if r.colored {
		c := color.New(attr)
		_, _ = c.Fprintf(r.out, format+"\n", args...)
		return
	}
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Summary aggregates per-file outcomes across a run.
type Summary struct {
	Formatted int
	Unchanged int
	Skipped   int
	Failed    int
}

// Total returns the number of files considered.
func (s *Summary) Total() int {
	return s.Formatted + s.Unchanged + s.Skipped + s.Failed
}

// Print writes the run summary when more than one file was involved.
func (s *Summary) Print(r *Reporter) {
	if s.Total() <= 1 {
		return
	}
	line := fmt.Sprintf("%d formatted, %d unchanged, %d skipped, %d failed",
		s.Formatted, s.Unchanged, s.Skipped, s.Failed)
	if s.Failed > 0 {
		r.Errorf("%s", line)
		return
	}
	r.Statusf("%s", line)
}
