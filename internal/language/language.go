// Package language maps source files to prettier parsers.
//
// Detection mirrors the editor heuristics the tool grew out of: the
// file extension decides in most cases, with an optional syntax scope
// hint (e.g. "source.ts", "text.html.vue") breaking ties for files
// whose extension is ambiguous or missing.
package language

import (
	"path/filepath"
	"strings"
)

// autoFormatExtensions is the default set of extensions (without dot)
// considered formattable.
var autoFormatExtensions = []string{
	"js", "jsx", "cjs", "mjs", "es6",
	"ts", "tsx",
	"css", "scss", "less",
	"json", "json5",
	"graphql", "gql",
	"md", "markdown",
	"vue",
	"html", "htm",
	"yaml", "yml",
}

// Parser returns the prettier --parser value for a file, or "" when
// prettier should pick the parser itself (html and plain javascript,
// which falls back to the configured default parser).
func Parser(path, scope string) (string, bool) {
	switch {
	case IsCSS(path, scope):
		return "css", true
	case IsTypeScript(path, scope):
		return "typescript", true
	case IsJSON(path, scope):
		return "json", true
	case IsGraphQL(path):
		return "graphql", true
	case IsMarkdown(path, scope):
		return "markdown", true
	case IsVue(path, scope):
		return "vue", true
	case strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml"):
		return "yaml", true
	}
	return "", false
}

// IsFormattable reports whether the file should be auto-formatted.
// custom extends the built-in extension set.
func IsFormattable(path string, custom []string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return false
	}
	ext = strings.ToLower(ext)
	for _, e := range autoFormatExtensions {
		if ext == e {
			return true
		}
	}
	for _, e := range custom {
		if ext == strings.ToLower(strings.TrimPrefix(e, ".")) {
			return true
		}
	}
	return false
}

// IsJavaScript reports whether the source is plain javascript, either
// by extension or by scope (including js embedded in html).
func IsJavaScript(path, scope string) bool {
	if strings.HasPrefix(scope, "source.js") || strings.Contains(scope, "source.js.embedded.html") {
		return true
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".jsx", ".cjs", ".mjs", ".es6":
		return true
	}
	return false
}

// IsCSS matches css, scss and less sources.
func IsCSS(path, scope string) bool {
	if strings.HasPrefix(scope, "source.css") || strings.Contains(scope, "meta.selector.css") {
		return true
	}
	if strings.HasPrefix(scope, "source.scss") || strings.HasPrefix(scope, "source.less") {
		return true
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".css", ".scss", ".less":
		return true
	}
	return false
}

// IsTypeScript matches ts and tsx sources.
func IsTypeScript(path, scope string) bool {
	if strings.HasPrefix(scope, "source.ts") || strings.HasPrefix(scope, "source.tsx") {
		return true
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".tsx":
		return true
	}
	return false
}

// IsJSON matches json sources.
func IsJSON(path, scope string) bool {
	if strings.HasPrefix(scope, "source.json") {
		return true
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".json5":
		return true
	}
	return false
}

// IsGraphQL matches graphql sources.
func IsGraphQL(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".graphql", ".gql":
		return true
	}
	return false
}

// IsMarkdown matches markdown sources.
func IsMarkdown(path, scope string) bool {
	if strings.HasPrefix(scope, "text.html.markdown") {
		return true
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// IsVue matches vue single-file components.
func IsVue(path, scope string) bool {
	if strings.HasPrefix(scope, "text.html.vue") {
		return true
	}
	return strings.ToLower(filepath.Ext(path)) == ".vue"
}

// IsHTML matches html sources. Markdown and vue scopes are html-ish
// but must not be treated as html here.
func IsHTML(path, scope string) bool {
	if strings.HasPrefix(scope, "text.html.markdown") || strings.HasPrefix(scope, "text.html.vue") {
		return false
	}
	if IsMarkdown(path, "") || IsVue(path, "") {
		return false
	}
	if strings.HasPrefix(scope, "text.html") {
		return true
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}
