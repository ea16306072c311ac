// Package format implements the formatting pipeline: resolve paths,
// assemble arguments, run prettier over stdin and splice the result
// back into the file.
package format

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prettify/prettify/internal/debug"
	"github.com/prettify/prettify/internal/detect"
	"github.com/prettify/prettify/internal/executor"
	"github.com/prettify/prettify/internal/prettier"
	"github.com/prettify/prettify/internal/resolve"
	pkgsettings "github.com/prettify/prettify/pkg/settings"
)

// Outcome describes what happened to a source buffer.
type Outcome int

const (
	// OutcomeUnchanged means the source was already formatted.
	OutcomeUnchanged Outcome = iota
	// OutcomeFormatted means the content changed.
	OutcomeFormatted
	// OutcomeNewlineOnly means only a trailing newline was added.
	OutcomeNewlineOnly
	// OutcomeNothing means the source was empty or whitespace-only.
	OutcomeNothing
	// OutcomeSkippedSize means the file exceeded max_file_size_limit.
	OutcomeSkippedSize
)

// Result is the outcome of one formatting run.
type Result struct {
	Outcome Outcome
	// Output is the final buffer content. Unset for OutcomeNothing and
	// OutcomeSkippedSize.
	Output []byte
}

// Changed reports whether the buffer was modified.
func (r *Result) Changed() bool {
	return r.Outcome == OutcomeFormatted || r.Outcome == OutcomeNewlineOnly
}

// RunError is a prettier run that exited non-zero. Syntax carries the
// parsed error position when prettier reported a syntax error.
type RunError struct {
	Stderr   string
	ExitCode int
	Syntax   *prettier.SyntaxError
}

// Error implements the error interface.
func (e *RunError) Error() string {
	return prettier.FormatErrorMessage(e.Stderr, e.ExitCode)
}

// Formatter runs prettier over source buffers. It is read-only after
// construction and safe to reuse across files.
type Formatter struct {
	settings   *pkgsettings.Settings
	exec       *executor.CommandExecutor
	additional []string

	// Warnings receives prettier stderr from successful runs
	// (deprecation notices and the like). Defaults to os.Stderr.
	Warnings io.Writer
}

// New creates a Formatter for the given settings.
func New(s *pkgsettings.Settings) (*Formatter, error) {
	additional, err := prettier.ParseAdditionalArgs(s.AdditionalCLIArgs)
	if err != nil {
		return nil, err
	}
	return &Formatter{
		settings:   s,
		exec:       executor.NewCommandExecutor(2 * time.Minute),
		additional: additional,
		Warnings:   os.Stderr,
	}, nil
}

// Settings returns the settings the formatter was built with.
func (f *Formatter) Settings() *pkgsettings.Settings {
	return f.settings
}

// FormatFile formats a file on disk. parser forces a --parser value,
// "" means detection by path. When write is true and the content
// changed, the file is rewritten atomically.
func (f *Formatter) FormatFile(path string, write bool, parser string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	if limit := f.settings.MaxFileSizeLimit; limit >= 0 && info.Size() > limit {
		debug.Log("Skipping %s: size %d exceeds limit %d", path, info.Size(), limit)
		return &Result{Outcome: OutcomeSkippedSize}, nil
	}

	src, err := os.ReadFile(path) // #nosec G304 - formatting user-named files is the whole point
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	result, err := f.FormatSource(src, abs, parser)
	if err != nil {
		return nil, err
	}

	if write && result.Changed() {
		if err := atomicWrite(path, result.Output, info.Mode()); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// CheckFile reports whether formatting the file would change it.
// Nothing is written.
func (f *Formatter) CheckFile(path string) (bool, error) {
	result, err := f.FormatFile(path, false, "")
	if err != nil {
		return false, err
	}
	return result.Changed(), nil
}

// FormatSource formats a source buffer. sourcePath is used for parser
// detection and path resolution; it may name a file that does not
// exist (stdin mode). parserOverride forces a --parser value.
func (f *Formatter) FormatSource(src []byte, sourcePath, parserOverride string) (*Result, error) {
	if isWhitespaceOnly(src) {
		return &Result{Outcome: OutcomeNothing}, nil
	}

	sourceDir := filepath.Dir(sourcePath)
	if sourcePath == "" {
		if cwd, err := os.Getwd(); err == nil {
			sourceDir = cwd
		}
	}

	configPath := ""
	if !prettier.HasFlag(f.additional, "--no-config") {
		if custom, ok := prettier.FlagValue(f.additional, "--config"); ok {
			configPath = custom
		} else if found, ok := resolve.PrettierConfig(sourceDir); ok {
			configPath = found
		}
	}

	bin, err := resolve.PrettierBinary(sourceDir, f.settings)
	if err != nil {
		return nil, err
	}

	ignorePath := ""
	if found, ok := resolve.IgnoreFile(sourceDir); ok {
		ignorePath = found
	}

	args := prettier.BuildArgs(prettier.ArgsInput{
		SourcePath:     sourcePath,
		ConfigPath:     configPath,
		IgnorePath:     ignorePath,
		ParserOverride: parserOverride,
		Settings:       f.settings,
		Additional:     f.additional,
	})

	argv := append(bin.Argv(), "--stdin")
	argv = append(argv, args...)

	start := time.Now()
	result, err := f.exec.Execute(argv[0], argv[1:], executor.ExecOptions{
		WorkingDir: detect.ProjectRoot(sourceDir),
		Stdin:      bytes.NewReader(src),
	})
	debug.LogTiming("prettier run", time.Since(start))
	if err != nil {
		return nil, err
	}
	if result.Error != nil {
		return nil, result.Error
	}
	if result.TimedOut {
		return nil, executor.ErrTimeout
	}

	if result.ExitCode != 0 {
		runErr := &RunError{Stderr: result.Stderr, ExitCode: result.ExitCode}
		if syntaxErr, ok := prettier.ExtractSyntaxError(result.Stderr); ok {
			runErr.Syntax = syntaxErr
		}
		return nil, runErr
	}

	// Warnings pass through on success
	if result.Stderr != "" && f.Warnings != nil {
		fmt.Fprintln(f.Warnings, prettier.FormatErrorMessage(result.Stderr, result.ExitCode))
	}

	if strings.TrimSpace(result.Stdout) == "" {
		return nil, fmt.Errorf("empty content returned to stdout")
	}

	return splice(src, result.Stdout), nil
}

// splice compares formatted output to the original and decides the
// final buffer content.
func splice(src []byte, transformed string) *Result {
	trimmedNew := trimTrailingWhitespaceAndLines(transformed)
	trimmedOld := trimTrailingWhitespaceAndLines(string(src))

	if trimmedNew == trimmedOld {
		// No formatting changes, but the buffer may still be missing a
		// trailing newline.
		if len(src) > 0 && src[len(src)-1] == '\n' {
			return &Result{Outcome: OutcomeUnchanged, Output: src}
		}
		return &Result{Outcome: OutcomeNewlineOnly, Output: append(append([]byte{}, src...), '\n')}
	}

	out := append([]byte(trimmedNew), '\n')
	return &Result{Outcome: OutcomeFormatted, Output: out}
}

// trimTrailingWhitespaceAndLines strips trailing whitespace and blank
// lines so cosmetic differences at EOF do not count as changes.
func trimTrailingWhitespaceAndLines(s string) string {
	return strings.TrimRight(s, " \t\r\n")
}

// isWhitespaceOnly reports whether the buffer has no printable content.
func isWhitespaceOnly(src []byte) bool {
	return len(bytes.TrimSpace(src)) == 0
}

// atomicWrite replaces path's contents via a temp file and rename,
// preserving the original mode.
func atomicWrite(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".prettify-*")
	if err != nil {
		return fmt.Errorf("cannot create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() //nolint:errcheck // best effort cleanup

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("cannot set mode on %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("cannot replace %s: %w", path, err)
	}
	return nil
}
