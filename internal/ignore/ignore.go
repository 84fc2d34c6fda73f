// Package ignore parses .relinkignore files: one doublestar pattern per line,
// '#' comments, a trailing '/' marking a directory prefix.
package ignore

import (
	"bufio"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FileName is the ignore file looked up in the site root.
const FileName = ".relinkignore"

// Matcher reports whether a slash-separated path relative to the root is ignored.
type Matcher struct {
	patterns []string
}

// Load reads patterns from path. A missing file yields an empty matcher.
func Load(p string) (Matcher, error) {
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return Matcher{}, nil
		}
		return Matcher{}, err
	}
	defer f.Close()
	var m Matcher
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m.patterns = append(m.patterns, line)
	}
	return m, sc.Err()
}

// Patterns returns the loaded patterns.
func (m Matcher) Patterns() []string { return m.patterns }

// Match reports whether rel is ignored. Patterns without a '/' match the base
// name at any depth, like .gitignore.
func (m Matcher) Match(rel string) bool {
	rel = strings.TrimPrefix(rel, "./")
	for _, p := range m.patterns {
		if strings.HasSuffix(p, "/") {
			dir := strings.TrimSuffix(strings.TrimPrefix(p, "/"), "/")
			if rel == dir || strings.HasPrefix(rel, dir+"/") || strings.Contains("/"+rel, "/"+dir+"/") {
				return true
			}
			continue
		}
		if !strings.Contains(p, "/") {
			if ok, _ := doublestar.Match(p, path.Base(rel)); ok {
				return true
			}
			continue
		}
		if ok, _ := doublestar.Match(strings.TrimPrefix(p, "/"), rel); ok {
			return true
		}
	}
	return false
}
