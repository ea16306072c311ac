// Package resolve locates the prettier binary, prettier config files
// and .prettierignore files for a given source file.
package resolve

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/prettify/prettify/internal/debug"
	"github.com/prettify/prettify/internal/detect"
	pkgsettings "github.com/prettify/prettify/pkg/settings"
)

// ConfigFileNames are the prettier config files searched for, in
// lookup order, in each directory from the source file upward.
var ConfigFileNames = []string{
	".prettierrc",
	".prettierrc.json",
	".prettierrc.yaml",
	".prettierrc.yml",
	".prettierrc.toml",
	".prettierrc.json5",
	".prettierrc.js",
	".prettierrc.cjs",
	"prettier.config.js",
	"prettier.config.cjs",
}

// IgnoreFileName is the prettier ignore file.
const IgnoreFileName = ".prettierignore"

// Binary holds a resolved prettier invocation target.
type Binary struct {
	// Path is the executable or script to run.
	Path string
	// Node, when non-empty, is the node executable that must run Path.
	Node string
}

// Argv returns the full command argv prefix for the binary.
func (b Binary) Argv() []string {
	if b.Node != "" {
		return []string{b.Node, b.Path}
	}
	return []string{b.Path}
}

// PrettierBinary resolves the prettier executable for a source file.
//
// Resolution order: the prettier_cli_path setting, then
// node_modules walking up from the file's directory (the .bin wrapper
// or the package's bin script run through node), then PATH.
func PrettierBinary(fileDir string, s *pkgsettings.Settings) (Binary, error) {
	nodePath := ExpandPath(s.NodePath)

	if s.PrettierCLIPath != "" {
		path := ExpandPath(s.PrettierCLIPath)
		if !filepath.IsAbs(path) {
			path = filepath.Join(detect.ProjectRoot(fileDir), path)
		}
		if _, err := os.Stat(path); err != nil {
			return Binary{}, fmt.Errorf("prettier_cli_path %q does not exist", path)
		}
		debug.LogResolve("prettier (prettier_cli_path)", path)
		return Binary{Path: path, Node: nodeFor(path, nodePath)}, nil
	}

	root := detect.ProjectRoot(fileDir)
	for dir := filepath.Clean(fileDir); ; dir = filepath.Dir(dir) {
		local := filepath.Join(dir, "node_modules", ".bin", "prettier")
		if isExecutable(local) {
			debug.LogResolve("prettier (node_modules)", local)
			return Binary{Path: local}, nil
		}
		script := filepath.Join(dir, "node_modules", "prettier", "bin-prettier.js")
		if _, err := os.Stat(script); err == nil {
			debug.LogResolve("prettier (package script)", script)
			return Binary{Path: script, Node: orDefault(nodePath, "node")}, nil
		}
		if dir == root || filepath.Dir(dir) == dir {
			break
		}
	}

	if path, err := exec.LookPath("prettier"); err == nil {
		debug.LogResolve("prettier (PATH)", path)
		return Binary{Path: path, Node: nodeFor(path, nodePath)}, nil
	}

	return Binary{}, fmt.Errorf(
		"command not found: 'prettier'\n\n"+
			"Ensure 'prettier' is installed in your environment PATH, "+
			"or set an absolute path in the 'prettier_cli_path' setting of your '%s' file",
		".prettify.json")
}

// PrettierConfig searches each directory from fileDir up to the
// project root (and finally the home directory) for a prettier config
// file, including a "prettier" key inside package.json.
func PrettierConfig(fileDir string) (string, bool) {
	root := detect.ProjectRoot(fileDir)
	for dir := filepath.Clean(fileDir); ; dir = filepath.Dir(dir) {
		if path, ok := configInDir(dir); ok {
			debug.LogResolve("prettier config", path)
			return path, true
		}
		if dir == root || filepath.Dir(dir) == dir {
			break
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		if path, ok := configInDir(home); ok {
			debug.LogResolve("prettier config (home)", path)
			return path, true
		}
	}

	debug.LogResolve("prettier config", "")
	return "", false
}

// IgnoreFile returns the nearest .prettierignore between fileDir and
// the project root.
func IgnoreFile(fileDir string) (string, bool) {
	root := detect.ProjectRoot(fileDir)
	for dir := filepath.Clean(fileDir); ; dir = filepath.Dir(dir) {
		candidate := filepath.Join(dir, IgnoreFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			debug.LogResolve("ignore file", candidate)
			return candidate, true
		}
		if dir == root || filepath.Dir(dir) == dir {
			break
		}
	}
	debug.LogResolve("ignore file", "")
	return "", false
}

// ExpandPath expands "~" and environment variable references in a
// user-supplied path.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
	}
	if strings.HasPrefix(path, "~"+string(filepath.Separator)) || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}

// configInDir checks a single directory for any prettier config file.
func configInDir(dir string) (string, bool) {
	for _, name := range ConfigFileNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}

	// package.json with a "prettier" key also counts as a config file.
	pkg := filepath.Join(dir, "package.json")
	if data, err := os.ReadFile(pkg); err == nil { // #nosec G304 - well-known file name
		if gjson.GetBytes(data, "prettier").Exists() {
			return pkg, true
		}
	}
	return "", false
}

// isExecutable reports whether path exists and is runnable.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode()&0111 != 0
}

// nodeFor decides whether a resolved prettier path needs node. Shell
// wrappers and native binaries do not; .js entry points do.
func nodeFor(path, nodePath string) string {
	if strings.HasSuffix(path, ".js") || strings.HasSuffix(path, ".cjs") {
		return orDefault(nodePath, "node")
	}
	return nodePath
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
