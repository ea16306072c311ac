package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	pkgsettings "github.com/prettify/prettify/pkg/settings"
)

func newTestWatcher(t *testing.T, s *pkgsettings.Settings) (*Watcher, string, chan string) {
	t.Helper()

	dir := t.TempDir()
	formatted := make(chan string, 16)
	w, err := New(dir, s, func(path string) { formatted <- path })
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	t.Cleanup(w.Stop)
	return w, dir, formatted
}

func TestExcluded(t *testing.T) {
	s := pkgsettings.Default()
	s.AutoFormatOnSaveExcludes = []string{
		"*.min.js",
		"dist/**",
		"**/vendor/**",
	}

	w, dir, _ := newTestWatcher(t, s)

	tests := []struct {
		rel  string
		want bool
	}{
		{"app.min.js", true},
		{"src/lib.min.js", true},
		{"dist/bundle.js", true},
		{"dist/sub/deep.js", true},
		{"src/vendor/lib/x.js", true},
		{"src/app.js", false},
		{"distx/app.js", false},
	}

	for _, tt := range tests {
		path := filepath.Join(dir, filepath.FromSlash(tt.rel))
		if got := w.Excluded(path); got != tt.want {
			t.Errorf("Excluded(%q) = %v, want %v", tt.rel, got, tt.want)
		}
	}
}

func TestShouldFormat(t *testing.T) {
	s := pkgsettings.Default()
	s.AutoFormatOnSaveExcludes = []string{"*.min.js"}

	w, dir, _ := newTestWatcher(t, s)

	js := filepath.Join(dir, "app.js")
	if err := os.WriteFile(js, []byte("const a=1\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if !w.shouldFormat(js) {
		t.Error("expected a plain js file to be formatted")
	}
	if w.shouldFormat(filepath.Join(dir, "main.go")) {
		t.Error("non-formattable extensions must be ignored")
	}
	if w.shouldFormat(filepath.Join(dir, "app.min.js")) {
		t.Error("excluded patterns must be ignored")
	}
	if w.shouldFormat(filepath.Join(dir, ".prettify-1234")) {
		t.Error("own temp files must be ignored")
	}
}

func TestShouldFormat_SizeLimit(t *testing.T) {
	s := pkgsettings.Default()
	s.MaxFileSizeLimit = 4

	w, dir, _ := newTestWatcher(t, s)

	big := filepath.Join(dir, "big.js")
	if err := os.WriteFile(big, []byte("const a = 1;\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if w.shouldFormat(big) {
		t.Error("files over the size limit must be ignored")
	}
}

func TestShouldFormat_RequiresPrettierConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	s := pkgsettings.Default()
	s.AutoFormatOnSaveRequiresPrettierConfig = true

	w, dir, _ := newTestWatcher(t, s)

	js := filepath.Join(dir, "app.js")
	if err := os.WriteFile(js, []byte("const a=1\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if w.shouldFormat(js) {
		t.Error("expected no formatting without a prettier config")
	}

	if err := os.WriteFile(filepath.Join(dir, ".prettierrc"), []byte("{}"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if !w.shouldFormat(js) {
		t.Error("expected formatting once a prettier config exists")
	}
}

func TestWatch_FormatsOnWrite(t *testing.T) {
	s := pkgsettings.Default()
	w, dir, formatted := newTestWatcher(t, s)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	// Give the watch a moment to settle before generating events.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "app.js")
	if err := os.WriteFile(path, []byte("const a=1\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	select {
	case got := <-formatted:
		if got != path {
			t.Errorf("got %q, want %q", got, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the file event")
	}
}

func TestWatch_DebouncesBursts(t *testing.T) {
	s := pkgsettings.Default()
	w, dir, formatted := newTestWatcher(t, s)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "app.js")
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("const a=1\n"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case <-formatted:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the debounced event")
	}

	// The burst collapses into a single callback.
	select {
	case extra := <-formatted:
		t.Errorf("expected one callback for the burst, got another for %q", extra)
	case <-time.After(debounceDelay * 2):
	}
}

func TestWatch_NewDirectoriesAdded(t *testing.T) {
	s := pkgsettings.Default()
	w, dir, formatted := newTestWatcher(t, s)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	time.Sleep(100 * time.Millisecond)

	sub := filepath.Join(dir, "src")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	time.Sleep(200 * time.Millisecond)

	path := filepath.Join(sub, "new.js")
	if err := os.WriteFile(path, []byte("const a=1\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	select {
	case got := <-formatted:
		if got != path {
			t.Errorf("got %q, want %q", got, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the event from the new directory")
	}
}

func TestSkipDir(t *testing.T) {
	w, _, _ := newTestWatcher(t, pkgsettings.Default())

	if !w.skipDir("/project/node_modules") {
		t.Error("node_modules must be skipped")
	}
	if !w.skipDir("/project/.git") {
		t.Error(".git must be skipped")
	}
	if !w.skipDir("/project/.cache") {
		t.Error("hidden directories must be skipped")
	}
	if w.skipDir("/project/src") {
		t.Error("regular directories must be watched")
	}
}
