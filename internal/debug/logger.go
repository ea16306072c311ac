// Package debug provides debug logging functionality for prettify.
package debug

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// EnvVar enables debug logging when set to a non-empty value.
const EnvVar = "PRETTIFY_DEBUG"

// Logger provides debug logging capabilities
type Logger struct {
	enabled bool
	writer  io.Writer
	start   time.Time
}

// Global debug logger instance
var globalLogger = &Logger{
	enabled: false,
	writer:  os.Stderr,
}

func init() {
	if os.Getenv(EnvVar) != "" {
		Enable()
	}
}

// Enable enables debug logging
func Enable() {
	globalLogger.enabled = true
	globalLogger.start = time.Now()
}

// IsEnabled returns whether debug logging is enabled
func IsEnabled() bool {
	return globalLogger.enabled
}

// SetWriter sets the output writer for debug logs
func SetWriter(w io.Writer) {
	globalLogger.writer = w
}

// Log writes a debug message if debugging is enabled
func Log(format string, args ...interface{}) {
	if !globalLogger.enabled {
		return
	}

	elapsed := time.Since(globalLogger.start)
	prefix := fmt.Sprintf("[DEBUG %s] ", formatDuration(elapsed))
	message := fmt.Sprintf(format, args...)

	if !strings.HasSuffix(message, "\n") {
		message += "\n"
	}

	_, _ = fmt.Fprint(globalLogger.writer, prefix+message)
}

// LogSection writes a section header for better organization
func LogSection(title string) {
	if !globalLogger.enabled {
		return
	}

	Log("=== %s ===", title)
}

// LogCommand logs subprocess invocation details
func LogCommand(command string, args []string, workingDir string) {
	if !globalLogger.enabled {
		return
	}

	LogSection("Prettier Invocation")
	Log("Command: %s", command)
	if len(args) > 0 {
		Log("Arguments: %v", args)
	}
	if workingDir != "" {
		Log("Working Directory: %s", workingDir)
	}
}

// LogResolve logs the outcome of a path resolution step
func LogResolve(what, path string) {
	if !globalLogger.enabled {
		return
	}

	if path == "" {
		Log("Resolve %s: not found", what)
		return
	}
	Log("Resolve %s: %s", what, path)
}

// LogTiming logs timing information
func LogTiming(operation string, duration time.Duration) {
	if !globalLogger.enabled {
		return
	}

	Log("Timing: %s took %s", operation, formatDuration(duration))
}

// LogError logs error details
func LogError(err error, context string) {
	if !globalLogger.enabled {
		return
	}

	Log("Error in %s: %v", context, err)
}

// formatDuration formats a duration for display
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
