// Package settings provides the core settings types and validation logic for prettify.
package settings

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
)

// Settings represents the full settings surface for prettify.
//
// Precedence when the same key appears in multiple files is
// project > user > built-in defaults. Merging is done by layering
// JSON documents onto a single struct, so only keys present in a
// file override the layer below.
type Settings struct {
	// PrettierCLIPath is an explicit path to the prettier executable.
	// Supports "~" and environment variable expansion. When empty, the
	// binary is resolved from node_modules/.bin and PATH.
	PrettierCLIPath string `json:"prettier_cli_path,omitempty"`

	// NodePath is an explicit path to the node executable, used when
	// the resolved prettier entry point is a .js file.
	NodePath string `json:"node_path,omitempty"`

	// AutoFormatOnSave enables formatting in watch mode.
	AutoFormatOnSave bool `json:"auto_format_on_save,omitempty"`

	// AutoFormatOnSaveExcludes lists glob patterns for files that watch
	// mode must never touch.
	AutoFormatOnSaveExcludes []string `json:"auto_format_on_save_excludes,omitempty"`

	// AutoFormatOnSaveRequiresPrettierConfig restricts watch mode to
	// files that have a resolvable prettier config file.
	AutoFormatOnSaveRequiresPrettierConfig bool `json:"auto_format_on_save_requires_prettier_config,omitempty"`

	// CustomFileExtensions extends the set of file extensions considered
	// formattable (without the leading dot).
	CustomFileExtensions []string `json:"custom_file_extensions,omitempty"`

	// MaxFileSizeLimit is the maximum file size in bytes that will be
	// formatted. -1 disables the limit.
	MaxFileSizeLimit int64 `json:"max_file_size_limit,omitempty"`

	// AdditionalCLIArgs maps prettier CLI flags to values, appended
	// verbatim after all generated arguments. Values may contain
	// shell-style quoting.
	AdditionalCLIArgs map[string]string `json:"additional_cli_args,omitempty"`

	// TabWidth is passed to prettier as --tab-width.
	TabWidth int `json:"tab_width,omitempty"`

	// UseTabs is passed to prettier as --use-tabs.
	UseTabs bool `json:"use_tabs,omitempty"`

	// Debug enables debug logging, same as the --debug flag.
	Debug bool `json:"debug,omitempty"`

	// PrettierOptions overrides the defaults in OptionCLIMap. Only used
	// when no prettier config file governs the run.
	PrettierOptions map[string]string `json:"prettier_options,omitempty"`
}

// Default returns the built-in settings layer.
func Default() *Settings {
	return &Settings{
		MaxFileSizeLimit: -1,
		TabWidth:         2,
		UseTabs:          false,
	}
}

// MergeJSON layers a JSON settings document on top of s. Keys absent
// from the document leave the existing values untouched.
func (s *Settings) MergeJSON(data []byte) error {
	if err := json.Unmarshal(data, s); err != nil {
		return fmt.Errorf("failed to parse settings: %w", err)
	}
	return nil
}

// Validate checks the settings for problems. All problems are
// collected and reported together rather than stopping at the first.
func (s *Settings) Validate() error {
	var result *multierror.Error

	if s.TabWidth < 0 {
		result = multierror.Append(result, fmt.Errorf("tab_width must be non-negative, got %d", s.TabWidth))
	}
	if s.MaxFileSizeLimit < -1 {
		result = multierror.Append(result, fmt.Errorf("max_file_size_limit must be -1 or greater, got %d", s.MaxFileSizeLimit))
	}
	for flag := range s.AdditionalCLIArgs {
		if !strings.HasPrefix(flag, "-") {
			result = multierror.Append(result, fmt.Errorf("additional_cli_args key %q must start with '-'", flag))
		}
	}
	for _, pattern := range s.AutoFormatOnSaveExcludes {
		if !doublestar.ValidatePattern(pattern) {
			result = multierror.Append(result, fmt.Errorf("invalid exclude pattern %q", pattern))
		}
	}
	for _, ext := range s.CustomFileExtensions {
		if strings.HasPrefix(ext, ".") {
			result = multierror.Append(result, fmt.Errorf("custom_file_extensions entry %q must not include the leading dot", ext))
		}
	}
	for name := range s.PrettierOptions {
		if !IsKnownOption(name) {
			result = multierror.Append(result, fmt.Errorf("unknown prettier option %q", name))
		}
	}

	return result.ErrorOrNil()
}

// Option returns the value for a prettier option, falling back to the
// mapped default when the user has not set one.
func (s *Settings) Option(name string) string {
	if v, ok := s.PrettierOptions[name]; ok && strings.TrimSpace(v) != "" {
		return normalizeOptionValue(v)
	}
	for _, m := range OptionCLIMap {
		if m.Option == name {
			return m.Default
		}
	}
	return ""
}

// Load parses and validates a settings document on top of the defaults.
func Load(data []byte) (*Settings, error) {
	s := Default()
	if err := s.MergeJSON(data); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// Save serializes settings to indented JSON.
func Save(s *Settings) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}
	return data, nil
}

// normalizeOptionValue lower-cases bool-ish values so "True" becomes
// the "true" prettier expects.
func normalizeOptionValue(v string) string {
	trimmed := strings.TrimSpace(v)
	switch strings.ToLower(trimmed) {
	case "true", "false":
		return strings.ToLower(trimmed)
	}
	return trimmed
}
