package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSettings(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, SettingsFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}
	return path
}

func TestLoader_Defaults(t *testing.T) {
	loader := &Loader{
		WorkDir: t.TempDir(),
		HomeDir: t.TempDir(),
	}

	s, err := loader.Load()
	if err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}

	if s.TabWidth != 2 {
		t.Errorf("expected default tab_width 2, got %d", s.TabWidth)
	}
}

func TestLoader_ProjectOverridesUser(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()

	writeSettings(t, home, `{"tab_width": 4, "node_path": "/opt/node/bin/node"}`)
	writeSettings(t, project, `{"tab_width": 8}`)

	loader := &Loader{WorkDir: project, HomeDir: home}
	s, err := loader.Load()
	if err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}

	if s.TabWidth != 8 {
		t.Errorf("expected project tab_width 8, got %d", s.TabWidth)
	}
	if s.NodePath != "/opt/node/bin/node" {
		t.Errorf("expected user node_path to survive, got %q", s.NodePath)
	}
}

func TestLoader_FindsProjectFileUpTree(t *testing.T) {
	root := t.TempDir()

	// Mark the root so the walk stops there
	if err := os.Mkdir(filepath.Join(root, ".git"), 0755); err != nil {
		t.Fatalf("failed to create .git: %v", err)
	}
	writeSettings(t, root, `{"tab_width": 3}`)

	nested := filepath.Join(root, "src", "components")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	loader := &Loader{WorkDir: nested, HomeDir: t.TempDir()}
	s, err := loader.Load()
	if err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}

	if s.TabWidth != 3 {
		t.Errorf("expected settings from project root, got tab_width %d", s.TabWidth)
	}
}

func TestLoader_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeSettings(t, dir, `{"tab_width": 7}`)
	t.Setenv(SettingsEnvVar, path)

	loader := &Loader{WorkDir: t.TempDir(), HomeDir: t.TempDir()}
	s, err := loader.Load()
	if err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}
	if s.TabWidth != 7 {
		t.Errorf("expected env settings to win, got tab_width %d", s.TabWidth)
	}
}

func TestLoader_InvalidProjectFile(t *testing.T) {
	project := t.TempDir()
	writeSettings(t, project, `{"tab_width": "not a number"}`)

	loader := &Loader{WorkDir: project, HomeDir: t.TempDir()}
	if _, err := loader.Load(); err == nil {
		t.Error("expected error for malformed settings file")
	}
}

func TestLoader_LoadFromPath_Missing(t *testing.T) {
	loader := &Loader{}
	if _, err := loader.LoadFromPath(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing explicit settings file")
	}
}

func TestValidateSettingsFile(t *testing.T) {
	dir := t.TempDir()

	good := writeSettings(t, dir, `{"tab_width": 4}`)
	if err := ValidateSettingsFile(good); err != nil {
		t.Errorf("expected valid file, got %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"tab_width": -3}`), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := ValidateSettingsFile(bad); err == nil {
		t.Error("expected validation error")
	}
}
