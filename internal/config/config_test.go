package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return p
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "relink.yaml", "domain: home.example.com\nmax_bytes: 123\nmax_passes: 7\nextensions: .html,.htm\ndefault_excludes: false\n")
	cfg, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Domain == nil || *cfg.Domain != "home.example.com" {
		t.Fatalf("expected domain, got %#v", cfg.Domain)
	}
	if cfg.MaxBytes == nil || *cfg.MaxBytes != 123 {
		t.Fatalf("expected max_bytes=123, got %#v", cfg.MaxBytes)
	}
	if cfg.MaxPasses == nil || *cfg.MaxPasses != 7 {
		t.Fatalf("expected max_passes=7, got %#v", cfg.MaxPasses)
	}
	if cfg.Extensions == nil || *cfg.Extensions != ".html,.htm" {
		t.Fatalf("expected extensions, got %#v", cfg.Extensions)
	}
	if cfg.DefaultExcludes == nil || *cfg.DefaultExcludes {
		t.Fatalf("expected default_excludes=false")
	}
	if cfg.LogLevel != nil {
		t.Fatalf("unset keys should stay nil")
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "relink.yaml", "domain: [unterminated\n")
	if _, err := LoadFile(p); err == nil {
		t.Fatal("expected yaml error")
	}
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "relink.yaml", "domain: a.example.com\n")
	writeTemp(t, dir, ".relink.yml", "domain: b.example.com\n")
	cfg, err := LoadLocal(dir)
	if err != nil {
		t.Fatalf("LoadLocal: %v", err)
	}
	if cfg.Domain == nil || *cfg.Domain != "b.example.com" {
		t.Fatalf("expected domain from .relink.yml, got %#v", cfg.Domain)
	}
}

func TestLoadLocal_NoConfig(t *testing.T) {
	if _, err := LoadLocal(t.TempDir()); !errors.Is(err, ErrNoConfig) {
		t.Fatalf("expected ErrNoConfig, got %v", err)
	}
}

func TestLoadGlobal_XDG_Config(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "relink"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeTemp(t, filepath.Join(dir, "relink"), "config.yml", "log_level: debug\n")
	t.Setenv("XDG_CONFIG_HOME", dir)
	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if cfg.LogLevel == nil || *cfg.LogLevel != "debug" {
		t.Fatalf("expected log_level=debug from global config, got %#v", cfg.LogLevel)
	}
}

func TestLoadGlobal_NoConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")
	if _, err := LoadGlobal(); !errors.Is(err, ErrNoConfig) {
		t.Fatalf("expected ErrNoConfig, got %v", err)
	}
}

func TestMarshal_OmitsUnset(t *testing.T) {
	d := "home.example.com"
	b, err := Marshal(FileConfig{Domain: &d})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "domain: home.example.com\n" {
		t.Fatalf("unexpected yaml: %q", string(b))
	}
}
