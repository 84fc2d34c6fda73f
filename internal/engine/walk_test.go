package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/relink/relink/internal/ignore"
)

func walkPaths(t *testing.T, cfg Config) []string {
	t.Helper()
	ign, err := ignore.Load(filepath.Join(cfg.Root, ignore.FileName))
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	err = Walk(context.Background(), cfg, ign, func(f File) error {
		got = append(got, f.Rel)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return got
}

func TestWalk_WithIncludeExcludeGlobs(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.html":         "a",
		"blog/b.html":    "b",
		"blog/feed.json": "{}",
	})

	got := walkPaths(t, Config{Root: dir, IncludeGlobs: "blog/**"})
	if len(got) != 2 || got[0] != "blog/b.html" || got[1] != "blog/feed.json" {
		t.Fatalf("include globs failed, got %v", got)
	}

	got = walkPaths(t, Config{Root: dir, ExcludeGlobs: "**/*.json"})
	if len(got) != 2 || got[0] != "a.html" || got[1] != "blog/b.html" {
		t.Fatalf("exclude globs failed, got %v", got)
	}
}

func TestWalk_Extensions(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.html": "a",
		"b.HTM":  "b",
		"c.json": "c",
		"d.xml":  "d",
	})
	got := walkPaths(t, Config{Root: dir, Extensions: []string{"htm", ".XML"}})
	if len(got) != 2 || got[0] != "b.HTM" || got[1] != "d.xml" {
		t.Fatalf("extension filter failed, got %v", got)
	}
	got = walkPaths(t, Config{Root: dir})
	if len(got) != 2 || got[0] != "a.html" || got[1] != "c.json" {
		t.Fatalf("default extensions failed, got %v", got)
	}
}

func TestWalk_DefaultExcludesAndIgnoreFile(t *testing.T) {
	dir := writeTree(t, map[string]string{
		".git/config.json":        "{}",
		"node_modules/pkg/a.html": "x",
		"package-lock.json":       "{}",
		"drafts/wip.html":         "x",
		"keep.html":               "x",
		"skip.html":               "<!-- relink:ignore-file -->",
		ignore.FileName:           "drafts/\n",
		"assets/app.js.map.json":  "{}",
		"dist/index.html":         "x",
		"search.min.json":         "{}",
	})
	got := walkPaths(t, Config{Root: dir, DefaultExcludes: true})
	want := []string{"assets/app.js.map.json", "dist/index.html", "keep.html", "search.min.json"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}

	got = walkPaths(t, Config{Root: dir})
	if len(got) != 7 {
		t.Fatalf("without default excludes expected 7 files, got %v", got)
	}
}

func TestWalk_RootNamedLikeExcludedDir(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "node_modules")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "a.html"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	got := walkPaths(t, Config{Root: root, DefaultExcludes: true})
	if len(got) != 1 {
		t.Fatalf("root itself must never be skipped, got %v", got)
	}
}

func TestWalk_SkipsSymlinks(t *testing.T) {
	dir := writeTree(t, map[string]string{"real/a.html": "x"})
	if err := os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	if err := os.Symlink(filepath.Join(dir, "real", "a.html"), filepath.Join(dir, "b.html")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	got := walkPaths(t, Config{Root: dir})
	if len(got) != 1 || got[0] != "real/a.html" {
		t.Fatalf("symlinks should not be followed, got %v", got)
	}
}

func TestCountTargets_InlineIgnoreAndMaxBytes(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.html":       "ok",
		"ignored.html": "<!-- relink:ignore-file -->",
		"notes.txt":    "not a target",
	})
	big := make([]byte, 2048)
	for i := range big {
		big[i] = 'x'
	}
	if err := os.WriteFile(filepath.Join(dir, "big.json"), big, 0o644); err != nil {
		t.Fatal(err)
	}

	n, err := CountTargets(Config{Root: dir, MaxBytes: 1024})
	if err != nil {
		t.Fatal(err)
	}
	// a.html and ignored.html; the directive is only seen once content is read
	if n != 2 {
		t.Fatalf("expected 2 targets, got %d", n)
	}
	n, err = CountTargets(Config{Root: dir})
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("expected 3 targets without a size cap, got %d", n)
	}
}

func TestCountTargets_MissingRoot(t *testing.T) {
	if _, err := CountTargets(Config{Root: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestParseExtensions(t *testing.T) {
	got := ParseExtensions(" .html, json ,,")
	if len(got) != 2 || got[0] != ".html" || got[1] != "json" {
		t.Fatalf("unexpected: %v", got)
	}
}
