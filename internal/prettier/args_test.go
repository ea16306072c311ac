package prettier

import (
	"strings"
	"testing"

	pkgsettings "github.com/prettify/prettify/pkg/settings"
)

func TestBuildArgs_NoConfig(t *testing.T) {
	s := pkgsettings.Default()
	args := BuildArgs(ArgsInput{
		SourcePath: "src/app.js",
		Settings:   s,
	})

	if !HasFlag(args, "--no-config") {
		t.Error("expected --no-config when no config file is resolved")
	}
	if HasFlag(args, "--config") {
		t.Error("did not expect --config")
	}
	// Without a config file every mapped option is passed explicitly.
	for _, m := range pkgsettings.OptionCLIMap {
		if !HasFlag(args, m.CLI) {
			t.Errorf("expected option flag %s", m.CLI)
		}
	}
	if v, _ := FlagValue(args, "--tab-width"); v != "2" {
		t.Errorf("expected --tab-width 2, got %q", v)
	}
	if v, _ := FlagValue(args, "--use-tabs"); v != "false" {
		t.Errorf("expected --use-tabs false, got %q", v)
	}
	if v, _ := FlagValue(args, "--stdin-filepath"); v != "src/app.js" {
		t.Errorf("expected --stdin-filepath src/app.js, got %q", v)
	}
}

func TestBuildArgs_WithConfig(t *testing.T) {
	s := pkgsettings.Default()
	args := BuildArgs(ArgsInput{
		SourcePath: "src/app.js",
		ConfigPath: "/project/.prettierrc",
		Settings:   s,
	})

	if v, _ := FlagValue(args, "--config"); v != "/project/.prettierrc" {
		t.Errorf("expected --config path, got %q", v)
	}
	if v, _ := FlagValue(args, "--config-precedence"); v != "cli-override" {
		t.Errorf("expected cli-override precedence, got %q", v)
	}
	// The config file owns the mapped options.
	if HasFlag(args, "--single-quote") {
		t.Error("mapped options must not be emitted when a config file applies")
	}
	// Tab settings are always passed.
	if !HasFlag(args, "--tab-width") || !HasFlag(args, "--use-tabs") {
		t.Error("expected tab flags regardless of config")
	}
}

func TestBuildArgs_UserConfigFlagWins(t *testing.T) {
	s := pkgsettings.Default()
	args := BuildArgs(ArgsInput{
		SourcePath: "src/app.js",
		ConfigPath: "/project/.prettierrc",
		Settings:   s,
		Additional: []string{"--config", "/custom/.prettierrc"},
	})

	joined := strings.Join(args, " ")
	if strings.Contains(joined, "/project/.prettierrc") {
		t.Error("resolved config must not be passed when the user supplies --config")
	}
	if HasFlag(args, "--config-precedence") {
		t.Error("no precedence flag when user supplies --config")
	}
	if v, _ := FlagValue(args, "--config"); v != "/custom/.prettierrc" {
		t.Errorf("expected user config to pass through, got %q", v)
	}
}

func TestBuildArgs_UserNoConfig(t *testing.T) {
	s := pkgsettings.Default()
	args := BuildArgs(ArgsInput{
		SourcePath: "src/app.js",
		Settings:   s,
		Additional: []string{"--no-config"},
	})

	count := 0
	for _, a := range args {
		if a == "--no-config" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected --no-config exactly once, got %d", count)
	}
}

func TestBuildArgs_ParserOverride(t *testing.T) {
	s := pkgsettings.Default()
	args := BuildArgs(ArgsInput{
		SourcePath:     "query",
		ParserOverride: "graphql",
		Settings:       s,
	})
	if v, _ := FlagValue(args, "--parser"); v != "graphql" {
		t.Errorf("expected parser override, got %q", v)
	}
}

func TestBuildArgs_HTMLOmitsStdinFilepath(t *testing.T) {
	s := pkgsettings.Default()
	args := BuildArgs(ArgsInput{
		SourcePath: "index.html",
		Settings:   s,
	})
	if HasFlag(args, "--stdin-filepath") {
		t.Error("--stdin-filepath must be omitted for html")
	}
}

func TestBuildArgs_IgnorePath(t *testing.T) {
	s := pkgsettings.Default()

	args := BuildArgs(ArgsInput{
		SourcePath: "a.js",
		IgnorePath: "/project/.prettierignore",
		Settings:   s,
	})
	if v, _ := FlagValue(args, "--ignore-path"); v != "/project/.prettierignore" {
		t.Errorf("expected resolved ignore path, got %q", v)
	}

	args = BuildArgs(ArgsInput{
		SourcePath: "a.js",
		IgnorePath: "/project/.prettierignore",
		Settings:   s,
		Additional: []string{"--ignore-path", "/custom/ignore"},
	})
	if v, _ := FlagValue(args, "--ignore-path"); v != "/custom/ignore" {
		t.Errorf("expected user ignore path to win, got %q", v)
	}
}

func TestBuildArgs_AdditionalLast(t *testing.T) {
	s := pkgsettings.Default()
	args := BuildArgs(ArgsInput{
		SourcePath: "a.js",
		Settings:   s,
		Additional: []string{"--insert-pragma"},
	})
	if args[len(args)-1] != "--insert-pragma" {
		t.Errorf("expected additional args at the end, got %v", args)
	}
}

func TestParseAdditionalArgs(t *testing.T) {
	args, err := ParseAdditionalArgs(map[string]string{
		"--insert-pragma": "",
		"--arrow-parens":  "always",
		"--plugin":        "'a.js' 'b.js'",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"--arrow-parens", "always", "--insert-pragma", "--plugin", "a.js", "b.js"}
	if len(args) != len(want) {
		t.Fatalf("got %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("got %v, want %v", args, want)
		}
	}
}

func TestParseAdditionalArgs_Empty(t *testing.T) {
	args, err := ParseAdditionalArgs(nil)
	if err != nil || args != nil {
		t.Errorf("expected nil result, got %v, %v", args, err)
	}
}

func TestParseAdditionalArgs_BadQuoting(t *testing.T) {
	if _, err := ParseAdditionalArgs(map[string]string{"--plugin": "'unterminated"}); err == nil {
		t.Error("expected error for unterminated quote")
	}
}
