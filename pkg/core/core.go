package core

import (
	"context"

	"github.com/relink/relink/internal/engine"
	"github.com/relink/relink/internal/rewrite"
	"github.com/relink/relink/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type Config = engine.Config
type Finding = types.Finding
type FileChange = types.FileChange
type FixResult = engine.FixResult
type VerifyResult = engine.Result
type Match = rewrite.Match
type Category = rewrite.Category

// Fix rewrites every eligible file under cfg.Root in place.
func Fix(ctx context.Context, cfg Config) (FixResult, error) {
	return engine.Fix(ctx, cfg)
}

// Verify reports the absolute links to cfg.Domain left under cfg.Root.
func Verify(ctx context.Context, cfg Config) (VerifyResult, error) {
	return engine.Verify(ctx, cfg)
}

// Rewrite localizes every link to domain in content using the default pass cap.
func Rewrite(domain, content string) (string, bool, error) {
	rw, err := rewrite.New(domain)
	if err != nil {
		return "", false, err
	}
	res := rw.Rewrite(content)
	return res.Content, res.Changed, nil
}

// Detect lists the substrings Rewrite would replace, without modifying content.
func Detect(domain, content string) ([]Match, error) {
	rw, err := rewrite.New(domain)
	if err != nil {
		return nil, err
	}
	return rw.Detect(content), nil
}

// Categories returns the recognizer categories in sweep order.
func Categories() []Category { return rewrite.Categories() }
