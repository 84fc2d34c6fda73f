package files

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// IgnoreFile is the per-site ignore list consulted by the walker.
const IgnoreFile = ".relinkignore"

// AppendIgnore ensures the given pattern is present in .relinkignore at root.
// It creates the file if missing and fixes a missing trailing newline. Idempotent.
func AppendIgnore(root, pattern string) (bool, error) {
	path := filepath.Join(root, IgnoreFile)
	pattern = strings.TrimSpace(pattern)
	existing := map[string]bool{}
	needsNL := false
	if b, err := os.ReadFile(path); err == nil {
		sc := bufio.NewScanner(strings.NewReader(string(b)))
		for sc.Scan() {
			existing[strings.TrimSpace(sc.Text())] = true
		}
		needsNL = len(b) > 0 && b[len(b)-1] != '\n'
	} else if !os.IsNotExist(err) {
		return false, err
	}
	if existing[pattern] {
		return false, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return false, err
	}
	defer f.Close()
	if needsNL {
		pattern = "\n" + pattern
	}
	if _, err := f.WriteString(pattern + "\n"); err != nil {
		return false, err
	}
	return true, nil
}

// DefaultGeneratedIgnores returns generated web artifacts that rarely hold
// hand-written links.
func DefaultGeneratedIgnores() []string {
	return []string{
		"*.map.json",
		"node_modules/",
	}
}
