package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	doublestar "github.com/bmatcuk/doublestar/v4"
	xxhash "github.com/cespare/xxhash/v2"
	"github.com/relink/relink/internal/logger"
	"github.com/relink/relink/internal/rewrite"
	"github.com/relink/relink/internal/types"
)

// Config controls which files are visited and how they are rewritten.
type Config struct {
	Root   string
	Domain string
	// Extensions defaults to DefaultExtensions when empty.
	Extensions      []string
	IncludeGlobs    string
	ExcludeGlobs    string
	MaxBytes        int64
	MaxPasses       int
	DefaultExcludes bool
	DryRun          bool
	// KeepContent fills FileChange.Before/After for previews.
	KeepContent bool
	Logger      logger.Logger
	Progress    func()
}

// FixResult summarizes a Fix run.
type FixResult struct {
	FilesScanned int
	FilesChanged int
	Replacements int
	Changes      []types.FileChange
	// Unconverged lists files that still changed when the pass cap was hit.
	Unconverged []string
	Duration    time.Duration
}

// Result contains findings and basic verification statistics.
type Result struct {
	Findings     []types.Finding
	FilesScanned int
	Duration     time.Duration
}

func (cfg Config) log() logger.Logger {
	if cfg.Logger == nil {
		return logger.NewNop()
	}
	return cfg.Logger
}

func (cfg Config) rewriter() (*rewrite.Rewriter, error) {
	return rewrite.New(cfg.Domain, rewrite.WithMaxPasses(cfg.MaxPasses))
}

// Fix rewrites every eligible file under cfg.Root in place. With DryRun set
// nothing is written and the result describes what would change.
func Fix(ctx context.Context, cfg Config) (FixResult, error) {
	var res FixResult
	rw, err := cfg.rewriter()
	if err != nil {
		return res, err
	}
	ign, err := loadIgnore(cfg.Root)
	if err != nil {
		return res, err
	}
	log := cfg.log()
	started := time.Now()
	err = Walk(ctx, cfg, ign, func(f File) error {
		res.FilesScanned++
		if cfg.Progress != nil {
			cfg.Progress()
		}
		out := rw.Rewrite(string(f.Data))
		if !out.Converged {
			res.Unconverged = append(res.Unconverged, f.Rel)
			log.Warn("pass limit reached",
				logger.String("path", f.Rel),
				logger.Int("passes", out.Passes),
			)
		}
		if !out.Changed {
			log.Debug("unchanged", logger.String("path", f.Rel))
			return nil
		}
		change := types.FileChange{
			Path:         f.Rel,
			Replacements: out.Replacements,
			Passes:       out.Passes,
			Converged:    out.Converged,
		}
		if cfg.KeepContent {
			change.Before = string(f.Data)
			change.After = out.Content
		}
		res.FilesChanged++
		res.Replacements += out.Replacements
		res.Changes = append(res.Changes, change)
		if cfg.DryRun {
			log.Debug("would rewrite", logger.String("path", f.Rel), logger.Int("replacements", out.Replacements))
			return nil
		}
		if err := os.WriteFile(f.Path, []byte(out.Content), f.Mode); err != nil {
			return fmt.Errorf("write %s: %w", f.Path, err)
		}
		log.Debug("rewrote",
			logger.String("path", f.Rel),
			logger.Int("replacements", out.Replacements),
			logger.Int("passes", out.Passes),
		)
		return nil
	})
	res.Duration = time.Since(started)
	if err != nil {
		return res, err
	}
	log.Info("fix complete",
		logger.String("root", cfg.Root),
		logger.Int("files_scanned", res.FilesScanned),
		logger.Int("files_changed", res.FilesChanged),
		logger.Bool("dry_run", cfg.DryRun),
		logger.Duration("duration", res.Duration),
	)
	return res, nil
}

// Verify reports every absolute link to cfg.Domain still present under
// cfg.Root. It never writes.
func Verify(ctx context.Context, cfg Config) (Result, error) {
	var res Result
	rw, err := cfg.rewriter()
	if err != nil {
		return res, err
	}
	ign, err := loadIgnore(cfg.Root)
	if err != nil {
		return res, err
	}
	log := cfg.log()
	started := time.Now()
	err = Walk(ctx, cfg, ign, func(f File) error {
		res.FilesScanned++
		if cfg.Progress != nil {
			cfg.Progress()
		}
		content := string(f.Data)
		ms := rw.Detect(content)
		if len(ms) > 0 {
			log.Debug("non-local links", logger.String("path", f.Rel), logger.Int("count", len(ms)))
		}
		res.Findings = append(res.Findings, findingsFor(f.Rel, content, ms)...)
		return nil
	})
	res.Duration = time.Since(started)
	if err != nil {
		return res, err
	}
	log.Info("verify complete",
		logger.String("root", cfg.Root),
		logger.Int("files_scanned", res.FilesScanned),
		logger.Int("findings", len(res.Findings)),
		logger.Duration("duration", res.Duration),
	)
	return res, nil
}

// findingsFor locates each match in content. Repeated texts are located at
// successive occurrences; text only exposed by unescaping gets Line 0.
func findingsFor(rel, content string, ms []rewrite.Match) []types.Finding {
	if len(ms) == 0 {
		return nil
	}
	next := map[string]int{}
	seen := map[string]int{}
	out := make([]types.Finding, 0, len(ms))
	for _, m := range ms {
		key := string(m.Category) + "|" + m.Text
		line := 0
		from := next[m.Text]
		if from <= len(content) {
			if i := strings.Index(content[from:], m.Text); i >= 0 {
				pos := from + i
				line = 1 + strings.Count(content[:pos], "\n")
				next[m.Text] = pos + len(m.Text)
			}
		}
		n := seen[key]
		seen[key] = n + 1
		out = append(out, types.Finding{
			Path:        rel,
			Line:        line,
			Category:    string(m.Category),
			Match:       m.Text,
			Fingerprint: fastHash([]byte(rel + "|" + key + "|" + strconv.Itoa(n))),
		})
	}
	return out
}

func fastHash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}

// allowedByGlobs returns true if the given path is allowed by the include/exclude
// glob configuration. Include globs are comma-separated and, if provided, act as
// a positive filter. Exclude globs are subtracted last.
func allowedByGlobs(relPath string, cfg Config) bool {
	rp := strings.ReplaceAll(relPath, "\\", "/")
	includes := parseGlobsList(cfg.IncludeGlobs)
	excludes := parseGlobsList(cfg.ExcludeGlobs)
	if len(includes) > 0 && !matchAnyGlob(rp, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p, trimGlobPrefix(p))
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
