package security

import (
	"strings"
	"testing"
)

func TestSanitizeEnvironment(t *testing.T) {
	env := []string{
		"HOME=/home/tester",
		"PATH=/usr/bin",
		"AWS_SECRET_ACCESS_KEY=abc123",
		"MY_APP_PASSWORD=hunter2",
		"NPM_TOKEN=tok",
		"EDITOR=vi",
		"BROKEN_NO_EQUALS",
		"NULLED=a\x00b",
	}

	got := SanitizeEnvironment(env)
	joined := strings.Join(got, "\n")

	for _, forbidden := range []string{"AWS_SECRET_ACCESS_KEY", "MY_APP_PASSWORD", "NPM_TOKEN", "BROKEN_NO_EQUALS", "NULLED"} {
		if strings.Contains(joined, forbidden) {
			t.Errorf("expected %s to be filtered out", forbidden)
		}
	}
	for _, kept := range []string{"HOME=/home/tester", "EDITOR=vi"} {
		if !strings.Contains(joined, kept) {
			t.Errorf("expected %s to survive", kept)
		}
	}
}

func TestSanitizeEnvironment_AugmentsPath(t *testing.T) {
	got := SanitizeEnvironment([]string{"PATH=/usr/bin"})
	if len(got) != 1 {
		t.Fatalf("unexpected result: %v", got)
	}
	for _, dir := range extraPathDirs {
		if !strings.Contains(got[0], dir) {
			t.Errorf("expected PATH to include %s: %q", dir, got[0])
		}
	}

	// Already-present directories are not duplicated.
	path := "PATH=/usr/bin:" + strings.Join(extraPathDirs, ":")
	again := SanitizeEnvironment([]string{path})
	if again[0] != path {
		t.Errorf("expected PATH unchanged, got %q", again[0])
	}
}

func TestContainsSensitivePattern(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"DB_PASSWORD", true},
		{"my_secret_key", true},
		{"SLACK_TOKEN", true},
		{"GOOGLE_CREDENTIALS", true},
		{"HOME", false},
		{"LANG", false},
	}
	for _, tt := range tests {
		if got := containsSensitivePattern(tt.key); got != tt.want {
			t.Errorf("containsSensitivePattern(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestMergeEnvironment(t *testing.T) {
	merged, err := MergeEnvironment([]string{"A=1", "B=2"}, []string{"B=3", "C=4"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vals := make(map[string]string)
	for _, e := range merged {
		parts := strings.SplitN(e, "=", 2)
		vals[parts[0]] = parts[1]
	}
	if vals["A"] != "1" || vals["B"] != "3" || vals["C"] != "4" {
		t.Errorf("unexpected merge result: %v", vals)
	}
}

func TestMergeEnvironment_Invalid(t *testing.T) {
	if _, err := MergeEnvironment(nil, []string{"NOEQUALS"}); err == nil {
		t.Error("expected error for malformed override")
	}
}
