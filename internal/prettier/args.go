// Package prettier builds prettier CLI argument lists and interprets
// prettier error output.
package prettier

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"github.com/prettify/prettify/internal/language"
	pkgsettings "github.com/prettify/prettify/pkg/settings"
)

// ArgsInput collects everything the argument builder needs for one
// invocation. The list is built fresh per run and discarded after the
// subprocess call.
type ArgsInput struct {
	// SourcePath is the file being formatted ("" for anonymous stdin).
	SourcePath string
	// Scope is an optional syntax scope hint for parser detection.
	Scope string
	// ConfigPath is the resolved prettier config file, "" when none.
	ConfigPath string
	// IgnorePath is the resolved .prettierignore, "" when none.
	IgnorePath string
	// ParserOverride forces a specific --parser value.
	ParserOverride string
	// Settings supplies option defaults and additional args.
	Settings *pkgsettings.Settings
	// Additional is the pre-parsed additional_cli_args list.
	Additional []string
}

// BuildArgs assembles the prettier argument list for one invocation.
// The --stdin flag itself is prepended by the caller together with the
// binary path.
func BuildArgs(in ArgsInput) []string {
	var args []string

	hasCustomConfig := HasFlag(in.Additional, "--config")
	hasNoConfig := HasFlag(in.Additional, "--no-config")
	hasPrecedence := HasFlag(in.Additional, "--config-precedence")

	configExists := in.ConfigPath != ""
	if configExists {
		if !hasCustomConfig {
			args = append(args, "--config", in.ConfigPath)
			if !hasPrecedence {
				args = append(args, "--config-precedence", "cli-override")
			}
		}
	} else if !hasNoConfig && !hasCustomConfig {
		args = append(args, "--no-config")
	}

	parser := in.ParserOverride
	if parser == "" {
		parser, _ = language.Parser(in.SourcePath, in.Scope)
	}

	for _, m := range pkgsettings.OptionCLIMap {
		if m.Option == "parser" && parser != "" {
			args = append(args, m.CLI, parser)
			continue
		}
		// When a config file governs the run, prettier reads the
		// options itself; only emit flags when no config applies.
		if configExists || hasCustomConfig {
			continue
		}
		args = append(args, m.CLI, in.Settings.Option(m.Option))
	}

	args = append(args, "--tab-width", strconv.Itoa(in.Settings.TabWidth))
	args = append(args, "--use-tabs", strconv.FormatBool(in.Settings.UseTabs))

	// --stdin-filepath lets prettier infer the parser and apply
	// overrides, but must be omitted for html so embedded css/js
	// fragments still format.
	if in.SourcePath != "" && !language.IsHTML(in.SourcePath, in.Scope) {
		args = append(args, "--stdin-filepath", in.SourcePath)
	}

	if in.IgnorePath != "" && !HasFlag(in.Additional, "--ignore-path") {
		args = append(args, "--ignore-path", in.IgnorePath)
	}

	args = append(args, in.Additional...)
	return args
}

// ParseAdditionalArgs flattens the additional_cli_args setting into an
// argument list. Values may carry shell-style quoting and expand to
// multiple tokens. Flags are emitted in sorted order so runs are
// reproducible.
func ParseAdditionalArgs(extra map[string]string) ([]string, error) {
	if len(extra) == 0 {
		return nil, nil
	}

	flags := make([]string, 0, len(extra))
	for flag := range extra {
		flags = append(flags, flag)
	}
	sort.Strings(flags)

	var args []string
	for _, flag := range flags {
		args = append(args, flag)
		value := strings.TrimSpace(extra[flag])
		if value == "" {
			continue
		}
		tokens, err := shlex.Split(value)
		if err != nil {
			return nil, fmt.Errorf("invalid additional_cli_args value for %s: %w", flag, err)
		}
		args = append(args, tokens...)
	}
	return args, nil
}

// HasFlag reports whether the argument list contains the given flag.
func HasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

// FlagValue returns the token following flag in args.
func FlagValue(args []string, flag string) (string, bool) {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1], true
		}
	}
	return "", false
}
