package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/relink/relink/internal/ignore"
)

// ErrNotUTF8 is returned when an eligible file is not valid UTF-8 text.
var ErrNotUTF8 = errors.New("file is not valid UTF-8")

// IgnoreDirective in a file's content excludes that file from processing.
const IgnoreDirective = "relink:ignore-file"

// File is one eligible file handed to a Walk callback.
type File struct {
	// Rel is slash-separated and relative to Config.Root.
	Rel  string
	Path string
	Mode fs.FileMode
	Data []byte
}

// Walk traverses cfg.Root depth-first in lexical order and invokes handle
// for each eligible file. Filesystem errors, non-UTF-8 content and errors
// returned by handle stop the walk.
func Walk(ctx context.Context, cfg Config, ign ignore.Matcher, handle func(File) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := validateRoot(cfg.Root); err != nil {
		return err
	}
	exts := normalizeExtensions(cfg.Extensions)
	return filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", p, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, ok, err := selectEntry(cfg, exts, ign, p, d)
		if err != nil || !ok {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", p, err)
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		if strings.Contains(string(b), IgnoreDirective) {
			return nil
		}
		if !utf8.Valid(b) {
			return fmt.Errorf("%s: %w", p, ErrNotUTF8)
		}
		return handle(File{Rel: rel, Path: p, Mode: info.Mode().Perm(), Data: b})
	})
}

// selectEntry applies every filter that does not need file content. It
// returns filepath.SkipDir for excluded directories.
func selectEntry(cfg Config, exts map[string]bool, ign ignore.Matcher, p string, d fs.DirEntry) (string, bool, error) {
	if d.IsDir() {
		if p != cfg.Root && cfg.DefaultExcludes && isDefaultDirExcluded(d.Name()) {
			return "", false, filepath.SkipDir
		}
		return "", false, nil
	}
	// symlinks, sockets and devices are never followed or rewritten
	if !d.Type().IsRegular() {
		return "", false, nil
	}
	if !exts[strings.ToLower(filepath.Ext(p))] {
		return "", false, nil
	}
	rel, err := filepath.Rel(cfg.Root, p)
	if err != nil {
		return "", false, err
	}
	rel = filepath.ToSlash(rel)
	if !allowedByGlobs(rel, cfg) {
		return "", false, nil
	}
	if ign.Match(rel) {
		return "", false, nil
	}
	if cfg.DefaultExcludes && isDefaultFileExcluded(strings.ToLower(rel)) {
		return "", false, nil
	}
	if cfg.MaxBytes > 0 {
		info, err := d.Info()
		if err != nil {
			return "", false, fmt.Errorf("stat %s: %w", p, err)
		}
		if info.Size() > cfg.MaxBytes {
			return "", false, nil
		}
	}
	return rel, true, nil
}

func validateRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("root %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root %s: not a directory", root)
	}
	return nil
}

func loadIgnore(root string) (ignore.Matcher, error) {
	m, err := ignore.Load(filepath.Join(root, ignore.FileName))
	if err != nil {
		return m, fmt.Errorf("load %s: %w", ignore.FileName, err)
	}
	return m, nil
}

// CountTargets returns how many files Fix or Verify would visit, without
// reading content. Files carrying the inline ignore directive are counted.
func CountTargets(cfg Config) (int, error) {
	if err := validateRoot(cfg.Root); err != nil {
		return 0, err
	}
	ign, err := loadIgnore(cfg.Root)
	if err != nil {
		return 0, err
	}
	exts := normalizeExtensions(cfg.Extensions)
	count := 0
	err = filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", p, err)
		}
		_, ok, err := selectEntry(cfg, exts, ign, p, d)
		if err != nil {
			return err
		}
		if ok {
			count++
		}
		return nil
	})
	return count, err
}
