package prettier

import (
	"strings"
	"testing"
)

func TestExtractSyntaxError(t *testing.T) {
	stderr := `[error] src/app.js: SyntaxError: Unexpected token, expected "," (3:9)
[error]   1 | const a = {
[error]   2 |   b: 1
[error] > 3 |   c: 2`

	se, ok := ExtractSyntaxError(stderr)
	if !ok {
		t.Fatal("expected a syntax error to be extracted")
	}
	if se.Message != `Unexpected token, expected ","` {
		t.Errorf("unexpected message: %q", se.Message)
	}
	if se.Line != 3 || se.Col != 9 {
		t.Errorf("unexpected position: %d:%d", se.Line, se.Col)
	}
	if !strings.Contains(se.Error(), "(3:9)") {
		t.Errorf("Error() should carry the position: %q", se.Error())
	}
}

func TestExtractSyntaxError_NoMatch(t *testing.T) {
	if _, ok := ExtractSyntaxError("[error] unexpected failure"); ok {
		t.Error("expected no match for generic errors")
	}
	if _, ok := ExtractSyntaxError(""); ok {
		t.Error("expected no match for empty stderr")
	}
}

func TestFormatErrorMessage(t *testing.T) {
	msg := FormatErrorMessage("something broke\n", 2)
	if !strings.Contains(msg, "exit code 2") {
		t.Errorf("expected exit code in message: %q", msg)
	}
	if strings.HasSuffix(msg, "\n") {
		t.Errorf("trailing newline should be trimmed: %q", msg)
	}
}
