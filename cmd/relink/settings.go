package relink

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/relink/relink/internal/config"
	"github.com/relink/relink/internal/engine"
	"github.com/relink/relink/internal/logger"
	"github.com/relink/relink/internal/rewrite"
	"github.com/spf13/cobra"
)

// settings is the resolved view of flags, local config and global config.
type settings struct {
	engine  engine.Config
	domain  string
	noColor bool
	log     logger.Logger
}

// loadConfigs reads global and local config files. Missing files are not
// errors; malformed ones are.
func loadConfigs(root string) (local, global config.FileConfig, err error) {
	if global, err = config.LoadGlobal(); err != nil && !errors.Is(err, config.ErrNoConfig) {
		return local, global, fmt.Errorf("global config: %w", err)
	}
	if local, err = config.LoadLocal(root); err != nil && !errors.Is(err, config.ErrNoConfig) {
		return local, global, fmt.Errorf("local config: %w", err)
	}
	return local, global, nil
}

// resolveSettings applies precedence CLI flag > local config > global config
// > built-in default. needDomain=false tolerates a missing domain.
func resolveSettings(cmd *cobra.Command, needDomain bool) (settings, error) {
	var s settings
	changed := func(name string) bool { return cmd.Flags().Changed(name) }

	base := flagPath
	if base == "" {
		base = "."
	}
	lcfg, gcfg, err := loadConfigs(base)
	if err != nil {
		return s, err
	}

	root := base
	if !changed("path") {
		if lcfg.Root != nil && *lcfg.Root != "" {
			root = *lcfg.Root
			if !filepath.IsAbs(root) {
				root = filepath.Join(base, root)
			}
		} else if gcfg.Root != nil && *gcfg.Root != "" {
			root = *gcfg.Root
		}
	}

	level := pickString(cliString(changed("log-level"), flagLogLevel), lcfg.LogLevel, gcfg.LogLevel)
	log, err := logger.New(logger.Config{Level: level})
	if err != nil {
		return s, err
	}
	s.log = log

	rawDomain := pickString(flagDomain, lcfg.Domain, gcfg.Domain)
	if rawDomain != "" || needDomain {
		s.domain, err = config.NormalizeDomain(rawDomain)
		if err != nil {
			return s, err
		}
	}

	maxPasses := pickInt(cliInt(changed("max-passes"), flagMaxPasses), lcfg.MaxPasses, gcfg.MaxPasses)
	if maxPasses <= 0 {
		maxPasses = rewrite.DefaultMaxPasses
	}
	exts := engine.ParseExtensions(pickString(cliString(changed("ext"), flagExt), lcfg.Extensions, gcfg.Extensions))

	s.noColor = pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor) ||
		os.Getenv("NO_COLOR") != "" ||
		!isTerminal(cmd.OutOrStdout())

	s.engine = engine.Config{
		Root:            root,
		Domain:          s.domain,
		Extensions:      exts,
		IncludeGlobs:    pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:    pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:        pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		MaxPasses:       maxPasses,
		DefaultExcludes: pickBoolDefault(changed("default-excludes"), flagDefaultExcludes, lcfg.DefaultExcludes, gcfg.DefaultExcludes, true),
		Logger:          log.With(logger.String("domain", s.domain)),
	}
	s.log.Debug("settings resolved",
		logger.String("root", root),
		logger.Strings("extensions", exts),
		logger.Int("max_passes", maxPasses),
	)
	return s, nil
}

func cliString(changed bool, v string) string {
	if !changed {
		return ""
	}
	return v
}

func cliInt(changed bool, v int) int {
	if !changed {
		return 0
	}
	return v
}

// attachProgress installs a textual progress counter on stderr when it is
// a terminal and the output is meant for people.
func attachProgress(cmd *cobra.Command, cfg *engine.Config) func() {
	errw := cmd.ErrOrStderr()
	if flagJSON || !isTerminal(errw) {
		return func() {}
	}
	total, err := engine.CountTargets(*cfg)
	if err != nil || total == 0 {
		return func() {}
	}
	progressed := 0
	cfg.Progress = func() {
		progressed++
		if progressed%10 == 0 || progressed == total {
			pct := float64(progressed) / float64(total) * 100
			_, _ = fmt.Fprintf(errw, "\r[%d/%d] %.0f%%", progressed, total, pct)
		}
	}
	return func() { _, _ = fmt.Fprintln(errw) }
}
