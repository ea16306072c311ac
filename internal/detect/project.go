// Package detect provides project type and project root detection for prettify.
package detect

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/prettify/prettify/internal/debug"
)

// rootMarkers are the files that identify a project root when walking
// up the directory tree.
var rootMarkers = []string{".git", "package.json", "go.mod", ".hg"}

// ProjectType represents a detected project type with confidence score
type ProjectType struct {
	Name       string   // Project type name (e.g., "nodejs", "go")
	Confidence float64  // Confidence score between 0 and 1
	Markers    []string // Files that identified this type
}

// ProjectDetector handles project type detection
type ProjectDetector struct {
	markerFiles map[string][]markerFile
}

// markerFile represents a file marker with its weight
type markerFile struct {
	name   string
	weight float64
}

// New creates a new ProjectDetector with default marker configurations
func New() *ProjectDetector {
	return &ProjectDetector{
		markerFiles: map[string][]markerFile{
			"nodejs": {
				{name: "package.json", weight: 1.0},
				{name: "package-lock.json", weight: 0.5},
				{name: "yarn.lock", weight: 0.5},
				{name: "pnpm-lock.yaml", weight: 0.5},
				{name: "node_modules", weight: 0.3},
				{name: "tsconfig.json", weight: 0.4},
				{name: "jsconfig.json", weight: 0.4},
			},
			"go": {
				{name: "go.mod", weight: 1.0},
				{name: "go.sum", weight: 0.7},
				{name: "main.go", weight: 0.4},
			},
			"python": {
				{name: "pyproject.toml", weight: 1.0},
				{name: "setup.py", weight: 0.8},
				{name: "requirements.txt", weight: 0.6},
			},
			"rust": {
				{name: "Cargo.toml", weight: 1.0},
				{name: "Cargo.lock", weight: 0.7},
			},
		},
	}
}

// Detect scans the given path for project type indicators
func (d *ProjectDetector) Detect(path string) ([]ProjectType, error) {
	debug.LogSection("Project Detection")
	debug.Log("Scanning path: %s", path)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path must be a directory")
	}

	scores := make(map[string]*projectScore)
	if err := d.scanDirectory(path, scores); err != nil {
		return nil, fmt.Errorf("error scanning directory: %w", err)
	}

	var results []ProjectType
	for projectName, score := range scores {
		if score.totalWeight > 0 {
			results = append(results, ProjectType{
				Name:       projectName,
				Confidence: score.score / score.maxPossibleScore(),
				Markers:    score.foundMarkers,
			})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})

	debug.Log("Detected %d project types", len(results))
	return results, nil
}

// projectScore tracks scoring for a project type
type projectScore struct {
	score        float64
	totalWeight  float64
	foundMarkers []string
	markerFiles  []markerFile
}

func (p *projectScore) maxPossibleScore() float64 {
	max := 0.0
	for _, marker := range p.markerFiles {
		max += marker.weight
	}
	return max
}

// scanDirectory scans a directory for marker files
func (d *ProjectDetector) scanDirectory(dir string, scores map[string]*projectScore) error {
	for projectType, markers := range d.markerFiles {
		if _, exists := scores[projectType]; !exists {
			scores[projectType] = &projectScore{markerFiles: markers}
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") && entry.IsDir() {
			continue
		}

		for projectType, score := range scores {
			for _, marker := range d.markerFiles[projectType] {
				if name == marker.name {
					debug.Log("Found marker %q for %s (weight: %.1f)", name, projectType, marker.weight)
					score.score += marker.weight
					score.totalWeight += marker.weight
					score.foundMarkers = append(score.foundMarkers, name)
					break
				}
			}
		}
	}

	return nil
}

// ProjectRoot walks up from dir looking for a project root marker.
// When none is found, dir itself is returned.
func ProjectRoot(dir string) string {
	dir = filepath.Clean(dir)
	current := dir
	for {
		for _, marker := range rootMarkers {
			if _, err := os.Stat(filepath.Join(current, marker)); err == nil {
				return current
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return dir
		}
		current = parent
	}
}

// prettierConfigDeps are the package.json dependency sections that can
// declare prettier.
var prettierConfigDeps = []string{"devDependencies.prettier", "dependencies.prettier"}

// UsesPrettier reports whether the project at dir already uses
// prettier, either via a dependency entry in package.json or a config
// file in the project root.
func UsesPrettier(dir string) bool {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err == nil {
		for _, path := range prettierConfigDeps {
			if gjson.GetBytes(data, path).Exists() {
				return true
			}
		}
		if gjson.GetBytes(data, "prettier").Exists() {
			return true
		}
	}

	configNames := []string{
		".prettierrc", ".prettierrc.json", ".prettierrc.yaml", ".prettierrc.yml",
		".prettierrc.toml", ".prettierrc.js", "prettier.config.js",
	}
	for _, name := range configNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}
