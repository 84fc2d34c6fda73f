package files

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAppendIgnore_IdempotentAndCreates(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, IgnoreFile)
	added, err := AppendIgnore(dir, "dist/")
	if err != nil {
		t.Fatalf("AppendIgnore: %v", err)
	}
	if !added {
		t.Fatal("expected pattern to be added")
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "dist/\n" {
		t.Fatalf("unexpected content: %q", string(b))
	}
	added, err = AppendIgnore(dir, "dist/")
	if err != nil {
		t.Fatalf("AppendIgnore second: %v", err)
	}
	if added {
		t.Fatal("second call should be a no-op")
	}
	b2, _ := os.ReadFile(p)
	if strings.Count(string(b2), "dist/") != 1 {
		t.Fatalf("expected single occurrence, got: %q", string(b2))
	}
}

func TestAppendIgnore_FixesMissingNewline(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, IgnoreFile)
	if err := os.WriteFile(p, []byte("drafts/"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := AppendIgnore(dir, "*.map.json"); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(p)
	if string(b) != "drafts/\n*.map.json\n" {
		t.Fatalf("unexpected content: %q", string(b))
	}
}

func TestDefaultGeneratedIgnores(t *testing.T) {
	items := DefaultGeneratedIgnores()
	found := false
	for _, it := range items {
		if it == "*.map.json" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected default ignores to contain *.map.json, got: %#v", items)
	}
}
