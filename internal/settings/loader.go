// Package settings provides settings file loading and merging for prettify.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prettify/prettify/internal/debug"
	"github.com/prettify/prettify/internal/detect"
	pkgsettings "github.com/prettify/prettify/pkg/settings"
)

const (
	// SettingsFileName is the settings file name looked up in the
	// project tree and the home directory.
	SettingsFileName = ".prettify.json"

	// SettingsEnvVar overrides the settings file location entirely.
	SettingsEnvVar = "PRETTIFY_SETTINGS"
)

// Loader handles locating and layering settings files.
//
// Layering order is defaults, then the user file in HomeDir, then the
// nearest project file walking up from WorkDir. Later layers win.
type Loader struct {
	// WorkDir is the directory the lookup starts from. Defaults to the
	// current working directory.
	WorkDir string
	// HomeDir holds the user-level settings file. Defaults to the
	// user's home directory.
	HomeDir string
}

// NewLoader creates a loader rooted at the current working directory.
func NewLoader() *Loader {
	l := &Loader{}
	if cwd, err := os.Getwd(); err == nil {
		l.WorkDir = cwd
	}
	if home, err := os.UserHomeDir(); err == nil {
		l.HomeDir = home
	}
	return l
}

// Load resolves the effective settings for the working directory.
// A missing settings file is not an error; defaults apply.
func (l *Loader) Load() (*pkgsettings.Settings, error) {
	debug.LogSection("Settings Loading")

	if envPath := os.Getenv(SettingsEnvVar); envPath != "" {
		debug.Log("Loading settings from %s: %s", SettingsEnvVar, envPath)
		return l.LoadFromPath(envPath)
	}

	s := pkgsettings.Default()

	if l.HomeDir != "" {
		userPath := filepath.Join(l.HomeDir, SettingsFileName)
		if err := mergeFile(s, userPath); err != nil {
			return nil, err
		}
	}

	if projectPath, ok := l.findProjectFile(); ok {
		if err := mergeFile(s, projectPath); err != nil {
			return nil, err
		}
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// LoadFromPath loads settings from an explicit file path, layered on
// the defaults only. The file must exist.
func (l *Loader) LoadFromPath(path string) (*pkgsettings.Settings, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path supplied by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	return pkgsettings.Load(data)
}

// ProjectFile returns the path of the project settings file that Load
// would use, if any.
func (l *Loader) ProjectFile() (string, bool) {
	return l.findProjectFile()
}

// findProjectFile walks from WorkDir up to the project root looking
// for a settings file.
func (l *Loader) findProjectFile() (string, bool) {
	if l.WorkDir == "" {
		return "", false
	}
	root := detect.ProjectRoot(l.WorkDir)
	dir := filepath.Clean(l.WorkDir)
	for {
		candidate := filepath.Join(dir, SettingsFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			debug.Log("Found project settings: %s", candidate)
			return candidate, true
		}
		if dir == root {
			return "", false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// mergeFile layers the settings file at path onto s. A missing file is
// skipped silently; a malformed one is an error.
func mergeFile(s *pkgsettings.Settings, path string) error {
	data, err := os.ReadFile(path) // #nosec G304 - settings paths are well-known locations
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	debug.Log("Merging settings from %s (%d bytes)", path, len(data))
	if err := s.MergeJSON(data); err != nil {
		return fmt.Errorf("invalid settings file %s: %w", path, err)
	}
	return nil
}

// ValidateSettingsFile validates a settings file without applying it.
func ValidateSettingsFile(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 - path is provided by user for validation
	if err != nil {
		return fmt.Errorf("failed to read settings file: %w", err)
	}
	_, err = pkgsettings.Load(data)
	return err
}
