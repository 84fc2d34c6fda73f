// Package config loads relink settings from local and global YAML files. CLI
// code applies precedence (flag > local > global > default) and maps the
// result into engine configuration.
package config
