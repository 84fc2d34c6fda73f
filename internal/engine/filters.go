package engine

import (
	"path"
	"strings"
)

// DefaultExtensions are processed when Config.Extensions is empty.
var DefaultExtensions = []string{".html", ".json"}

// Build outputs such as dist/ or public/ are often the tree being fixed, so
// only VCS and tool directories are skipped.
var defaultExcludeDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	".venv":        true,
	"__pycache__":  true,
	".cache":       true,
	".idea":        true,
	".vscode":      true,
}

// lockfiles carry registry URLs, never site links
var defaultExcludeFileNames = map[string]bool{
	"package-lock.json":   true,
	"npm-shrinkwrap.json": true,
	"composer.lock":       true,
}

func isDefaultDirExcluded(name string) bool {
	return defaultExcludeDirs[name] || strings.HasPrefix(name, ".git")
}

// Minified and source-map JSON are not excluded: exported sites keep
// escaped absolute URLs there.
func isDefaultFileExcluded(lowerRel string) bool {
	return defaultExcludeFileNames[path.Base(lowerRel)]
}

// normalizeExtensions lower-cases exts and adds a missing leading dot.
func normalizeExtensions(exts []string) map[string]bool {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	out := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out[e] = true
	}
	return out
}

// ParseExtensions splits a comma-separated extension list such as ".html,json".
func ParseExtensions(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
