package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
}

func TestExpandPaths_Directory(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/app.js":              "const a=1\n",
		"src/styles.css":          "a{}\n",
		"src/deep/nested.ts":      "let x\n",
		"node_modules/pkg/lib.js": "ignored\n",
		".cache/tmp.js":           "ignored\n",
		"main.go":                 "package main\n",
		"README.rst":              "docs\n",
	})

	got, err := expandPaths([]string{root}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := make(map[string]bool)
	for _, p := range got {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatalf("unexpected path %q: %v", p, err)
		}
		found[filepath.ToSlash(rel)] = true
	}

	for _, want := range []string{"src/app.js", "src/styles.css", "src/deep/nested.ts"} {
		if !found[want] {
			t.Errorf("expected %s in expansion, got %v", want, got)
		}
	}
	for _, skip := range []string{"node_modules/pkg/lib.js", ".cache/tmp.js", "main.go", "README.rst"} {
		if found[skip] {
			t.Errorf("did not expect %s in expansion", skip)
		}
	}
}

func TestExpandPaths_FileArgsPassThrough(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"notes.txt": "plain\n"})

	// Explicit file arguments survive even when not formattable, so the
	// per-file loop can report why they were skipped.
	path := filepath.Join(root, "notes.txt")
	got, err := expandPaths([]string{path}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != path {
		t.Errorf("expected file arg to pass through, got %v", got)
	}
}

func TestExpandPaths_EmptyDirectory(t *testing.T) {
	if _, err := expandPaths([]string{t.TempDir()}, nil); err == nil {
		t.Error("expected error when no formattable files are found")
	}
}

func TestExpandPaths_MissingArg(t *testing.T) {
	if _, err := expandPaths([]string{filepath.Join(t.TempDir(), "nope")}, nil); err == nil {
		t.Error("expected error for a missing argument")
	}
}

func TestExpandPaths_CustomExtensions(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"App.svelte": "<div/>\n"})

	got, err := expandPaths([]string{root}, []string{"svelte"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected the custom extension to be picked up, got %v", got)
	}
}
