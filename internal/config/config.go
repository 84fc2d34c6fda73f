package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for relink.
type FileConfig struct {
	Domain          *string `yaml:"domain,omitempty"`
	Root            *string `yaml:"root,omitempty"`
	Extensions      *string `yaml:"extensions,omitempty"`
	Include         *string `yaml:"include,omitempty"`
	Exclude         *string `yaml:"exclude,omitempty"`
	MaxBytes        *int64  `yaml:"max_bytes,omitempty"`
	MaxPasses       *int    `yaml:"max_passes,omitempty"`
	DefaultExcludes *bool   `yaml:"default_excludes,omitempty"`
	NoColor         *bool   `yaml:"no_color,omitempty"`
	LogLevel        *string `yaml:"log_level,omitempty"`
}

// ErrNoConfig is returned by LoadLocal and LoadGlobal when no file exists.
var ErrNoConfig = errors.New("no config file")

// LocalNames are searched in order inside the site root.
var LocalNames = []string{".relink.yml", ".relink.yaml", "relink.yml", "relink.yaml"}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a config file in the given site root.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range LocalNames {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, ErrNoConfig
}

// GlobalPath returns $XDG_CONFIG_HOME/relink/config.yml, falling back to
// ~/.config. It is empty when neither can be determined.
func GlobalPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return ""
	}
	return filepath.Join(base, "relink", "config.yml")
}

// LoadGlobal loads the per-user config file.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	p := GlobalPath()
	if p == "" {
		return cfg, ErrNoConfig
	}
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, ErrNoConfig
}

// Marshal renders cfg as YAML.
func Marshal(cfg FileConfig) ([]byte, error) {
	return yaml.Marshal(&cfg)
}
