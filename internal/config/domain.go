package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

var ErrNoDomain = errors.New("no target domain configured; pass --domain or set domain in .relink.yml")

// NormalizeDomain turns user input into the bare ASCII host the recognizers
// are compiled for: trimmed, lower-cased, trailing dot dropped, IDNA encoded.
// A scheme, path, port or userinfo is rejected rather than guessed at.
func NormalizeDomain(raw string) (string, error) {
	host := strings.TrimSpace(raw)
	if host == "" {
		return "", ErrNoDomain
	}
	if strings.Contains(host, "://") || strings.ContainsAny(host, "/\\@:?# ") {
		return "", fmt.Errorf("invalid domain %q: want a bare host such as home.example.com", raw)
	}
	host = strings.TrimSuffix(host, ".")
	if host == "" {
		return "", fmt.Errorf("invalid domain %q", raw)
	}
	if !isASCII(host) {
		ascii, err := idna.Lookup.ToASCII(host)
		if err != nil {
			return "", fmt.Errorf("invalid domain %q: idna: %w", raw, err)
		}
		host = ascii
	}
	return strings.ToLower(host), nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
