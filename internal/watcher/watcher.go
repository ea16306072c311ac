// Package watcher implements format-on-save: a recursive filesystem
// watch that feeds changed files into the formatting pipeline.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/prettify/prettify/internal/debug"
	"github.com/prettify/prettify/internal/language"
	"github.com/prettify/prettify/internal/resolve"
	pkgsettings "github.com/prettify/prettify/pkg/settings"
)

// debounceDelay coalesces bursts of write events for the same file.
// Editors commonly write a file several times in quick succession.
const debounceDelay = 500 * time.Millisecond

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	".hg":          true,
}

// Watcher watches a directory tree and invokes OnFile for each saved
// file that passes the filters.
type Watcher struct {
	root     string
	settings *pkgsettings.Settings
	watcher  *fsnotify.Watcher

	// OnFile is called with the path of each file to format.
	OnFile func(path string)
	// OnError receives non-fatal watch errors.
	OnError func(err error)

	mu       sync.Mutex
	debounce map[string]*time.Timer
	stopOnce sync.Once
	stopChan chan struct{}
}

// New creates a watcher rooted at dir. Start must be called to begin
// watching.
func New(dir string, s *pkgsettings.Settings, onFile func(path string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		root:     root,
		settings: s,
		watcher:  fsw,
		OnFile:   onFile,
		debounce: make(map[string]*time.Timer),
		stopChan: make(chan struct{}),
	}

	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return w, nil
}

// Start runs the watch loop until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	go w.loop(ctx)
	debug.Log("Watching %s for changes", w.root)
}

// Stop shuts the watcher down. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
		_ = w.watcher.Close()
	})
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			debug.LogError(err, "filesystem watch")
			if w.OnError != nil {
				w.OnError(err)
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// New directories must be added to the watch as they appear.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !w.skipDir(event.Name) {
				_ = w.addTree(event.Name)
			}
			return
		}
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	path := event.Name
	if !w.shouldFormat(path) {
		return
	}

	w.mu.Lock()
	if timer, exists := w.debounce[path]; exists {
		timer.Stop()
	}
	w.debounce[path] = time.AfterFunc(debounceDelay, func() {
		w.mu.Lock()
		delete(w.debounce, path)
		w.mu.Unlock()
		if w.OnFile != nil {
			w.OnFile(path)
		}
	})
	w.mu.Unlock()
}

// shouldFormat applies the watch-mode filters: formattable extension,
// exclusion globs, size limit, and the optional prettier-config
// requirement.
func (w *Watcher) shouldFormat(path string) bool {
	if !language.IsFormattable(path, w.settings.CustomFileExtensions) {
		return false
	}
	if strings.HasPrefix(filepath.Base(path), ".prettify-") {
		// Our own temp files from atomic writes.
		return false
	}
	if w.Excluded(path) {
		debug.Log("Excluded from auto format: %s", path)
		return false
	}
	if limit := w.settings.MaxFileSizeLimit; limit >= 0 {
		if info, err := os.Stat(path); err == nil && info.Size() > limit {
			debug.Log("Skipping %s: exceeds max_file_size_limit", path)
			return false
		}
	}
	if w.settings.AutoFormatOnSaveRequiresPrettierConfig {
		if _, ok := resolve.PrettierConfig(filepath.Dir(path)); !ok {
			debug.Log("Auto format ignored, no prettier config found for %s", path)
			return false
		}
	}
	return true
}

// Excluded matches the path against auto_format_on_save_excludes.
// Patterns are tried against the path relative to the watch root and
// against the basename.
func (w *Watcher) Excluded(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)

	for _, pattern := range w.settings.AutoFormatOnSaveExcludes {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}

// addTree adds dir and all its non-skipped subdirectories to the
// watch.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable entries are skipped, not fatal
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && w.skipDir(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			debug.LogError(err, "adding watch for "+path)
		}
		return nil
	})
}

// skipDir reports whether a directory must not be watched.
func (w *Watcher) skipDir(path string) bool {
	return SkipDirName(filepath.Base(path))
}

// SkipDirName reports whether a directory name is never descended
// into: dependency and VCS directories plus hidden directories. Shared
// with the commands that expand directory arguments.
func SkipDirName(base string) bool {
	if skipDirs[base] {
		return true
	}
	return strings.HasPrefix(base, ".") && base != "."
}
