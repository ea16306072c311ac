package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/prettify/prettify/internal/language"
	"github.com/prettify/prettify/internal/watcher"
)

// expandPaths replaces directory arguments with the formattable files
// inside them, walking recursively with the same directory skips as
// watch mode. File arguments pass through untouched so the per-file
// reporting can still explain why one was skipped.
func expandPaths(args []string, custom []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		walkErr := filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable entries are skipped, not fatal
			}
			if d.IsDir() {
				if path != arg && watcher.SkipDirName(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if language.IsFormattable(path, custom) {
				paths = append(paths, path)
			}
			return nil
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no formattable files found")
	}
	return paths, nil
}
