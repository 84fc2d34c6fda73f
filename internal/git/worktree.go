// Package git guards in-place rewrites: a site tree that lives inside a git
// worktree with uncommitted changes can be refused before any file is touched.
package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// ErrDirtyWorktree is returned by RequireClean when files under the root
// have uncommitted or untracked changes.
var ErrDirtyWorktree = errors.New("worktree has uncommitted changes")

// Status describes the git state of a site root.
type Status struct {
	// InRepo is false when no enclosing repository was found.
	InRepo bool
	// WorktreeRoot is the top-level directory of the enclosing repository.
	WorktreeRoot string
	// Dirty lists changed paths under the site root, relative to WorktreeRoot.
	Dirty []string
}

// validateRoot validates and normalizes a root path.
// Returns the cleaned absolute path or an error if invalid.
func validateRoot(root string) (string, error) {
	if strings.ContainsRune(root, 0) {
		return "", fmt.Errorf("invalid path: contains null byte")
	}
	abs, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot access path %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", root)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	return abs, nil
}

// Inspect opens the repository enclosing root, if any, and collects the
// modified, staged and untracked paths below root.
func Inspect(root string) (Status, error) {
	var st Status
	abs, err := validateRoot(root)
	if err != nil {
		return st, err
	}
	repo, err := gogit.PlainOpenWithOptions(abs, &gogit.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, gogit.ErrRepositoryNotExists) {
		return st, nil
	}
	if err != nil {
		return st, fmt.Errorf("open repository at %s: %w", root, err)
	}
	wt, err := repo.Worktree()
	if errors.Is(err, gogit.ErrIsBareRepository) {
		return st, nil
	}
	if err != nil {
		return st, fmt.Errorf("worktree for %s: %w", root, err)
	}
	st.InRepo = true
	st.WorktreeRoot = wt.Filesystem.Root()
	if resolved, err := filepath.EvalSymlinks(st.WorktreeRoot); err == nil {
		st.WorktreeRoot = resolved
	}
	prefix, err := filepath.Rel(st.WorktreeRoot, abs)
	if err != nil {
		return st, err
	}
	prefix = filepath.ToSlash(prefix)

	status, err := wt.Status()
	if err != nil {
		return st, fmt.Errorf("git status in %s: %w", st.WorktreeRoot, err)
	}
	for p, fs := range status {
		if fs.Staging == gogit.Unmodified && fs.Worktree == gogit.Unmodified {
			continue
		}
		if prefix != "." && p != prefix && !strings.HasPrefix(p, prefix+"/") {
			continue
		}
		st.Dirty = append(st.Dirty, p)
	}
	sort.Strings(st.Dirty)
	return st, nil
}

// RequireClean returns ErrDirtyWorktree, wrapped with the offending paths,
// when root is inside a repository with pending changes under it. A root
// outside any repository passes.
func RequireClean(root string) error {
	st, err := Inspect(root)
	if err != nil {
		return err
	}
	if len(st.Dirty) == 0 {
		return nil
	}
	shown := st.Dirty
	more := ""
	if len(shown) > 5 {
		more = fmt.Sprintf(" and %d more", len(shown)-5)
		shown = shown[:5]
	}
	return fmt.Errorf("%w: %s%s (commit or stash first, or drop --require-clean)", ErrDirtyWorktree, strings.Join(shown, ", "), more)
}
