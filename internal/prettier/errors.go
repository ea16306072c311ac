package prettier

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// syntaxErrorRe matches prettier's syntax error report, e.g.
//
//	[error] src/app.js: SyntaxError: Unexpected token (3:9)
var syntaxErrorRe = regexp.MustCompile(`(?m)^.*?:\s(?:SyntaxError):\s(.+) \((\d+):(\d+)\)`)

// SyntaxError is a parse failure reported by prettier, with the
// 1-based position of the offending token.
type SyntaxError struct {
	Message string
	Line    int
	Col     int
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("SyntaxError: %s (%d:%d)", e.Message, e.Line, e.Col)
}

// ExtractSyntaxError scans prettier's stderr for a syntax error and
// returns its message and position.
func ExtractSyntaxError(stderr string) (*SyntaxError, bool) {
	m := syntaxErrorRe.FindStringSubmatch(stderr)
	if m == nil {
		return nil, false
	}
	line, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, false
	}
	col, err := strconv.Atoi(m[3])
	if err != nil {
		return nil, false
	}
	return &SyntaxError{Message: m[1], Line: line, Col: col}, true
}

// FormatErrorMessage renders prettier's error output with its exit
// code for the error report.
func FormatErrorMessage(output string, exitCode int) string {
	return fmt.Sprintf("prettier reported errors (exit code %d):\n%s", exitCode, strings.TrimRight(output, "\n"))
}
