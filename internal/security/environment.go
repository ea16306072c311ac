// Package security provides environment sanitization for the prettier
// subprocess.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SensitiveEnvVars contains environment variables that should not be
// passed to the prettier subprocess. Prettier has no use for secrets
// and plugins can execute arbitrary code.
var SensitiveEnvVars = []string{
	"AWS_SECRET_ACCESS_KEY",
	"AWS_SESSION_TOKEN",
	"GITHUB_TOKEN",
	"GITLAB_TOKEN",
	"NPM_TOKEN",
	"API_KEY",
	"API_SECRET",
	"SECRET_KEY",
	"PRIVATE_KEY",
	"SSH_PRIVATE_KEY",

	// Loader hijack vectors
	"LD_PRELOAD",
	"LD_LIBRARY_PATH",
	"DYLD_INSERT_LIBRARIES",
	"DYLD_LIBRARY_PATH",

	// Shell configuration
	"BASH_ENV",
	"ZDOTDIR",
}

// extraPathDirs are appended to PATH so node installed via the common
// package managers is found even from contexts with a stripped PATH.
var extraPathDirs = []string{
	"/usr/local/bin",
	"/opt/homebrew/bin",
}

// ProcessEnvironment returns the environment for the prettier
// subprocess: the inherited environment minus sensitive variables,
// with PATH extended to cover the usual node install locations.
func ProcessEnvironment() []string {
	return SanitizeEnvironment(os.Environ())
}

// SanitizeEnvironment filters an environment list for safe subprocess
// execution.
func SanitizeEnvironment(env []string) []string {
	sensitive := make(map[string]bool, len(SensitiveEnvVars))
	for _, v := range SensitiveEnvVars {
		sensitive[v] = true
	}

	filtered := make([]string, 0, len(env))
	for _, envVar := range env {
		parts := strings.SplitN(envVar, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key, value := parts[0], parts[1]

		if sensitive[key] || containsSensitivePattern(key) {
			continue
		}
		if strings.Contains(value, "\x00") {
			continue
		}

		if key == "PATH" {
			envVar = "PATH=" + augmentPath(value)
		}
		filtered = append(filtered, envVar)
	}

	return filtered
}

// augmentPath appends the well-known node install directories that are
// missing from the given PATH value.
func augmentPath(value string) string {
	existing := make(map[string]bool)
	for _, p := range filepath.SplitList(value) {
		existing[p] = true
	}
	for _, dir := range extraPathDirs {
		if !existing[dir] {
			value += string(os.PathListSeparator) + dir
		}
	}
	return value
}

// containsSensitivePattern checks if a key looks like it carries a
// credential.
func containsSensitivePattern(key string) bool {
	upperKey := strings.ToUpper(key)

	sensitivePatterns := []string{
		"PASSWORD",
		"SECRET",
		"TOKEN",
		"CREDENTIAL",
		"PRIVATE_KEY",
	}

	for _, pattern := range sensitivePatterns {
		if strings.Contains(upperKey, pattern) {
			return true
		}
	}

	return false
}

// MergeEnvironment merges custom KEY=VALUE overrides onto a base
// environment.
func MergeEnvironment(base []string, custom []string) ([]string, error) {
	envMap := make(map[string]string)

	for _, env := range base {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) == 2 {
			envMap[parts[0]] = parts[1]
		}
	}

	for _, env := range custom {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid environment variable format: %s", env)
		}
		envMap[parts[0]] = parts[1]
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}

	return result, nil
}
