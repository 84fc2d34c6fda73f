package relink

import (
	"fmt"
	"time"

	"github.com/relink/relink/internal/engine"
	"github.com/relink/relink/internal/git"
	"github.com/relink/relink/internal/report"
	"github.com/spf13/cobra"
)

var (
	flagDryRun       bool
	flagDiff         bool
	flagRequireClean bool
	flagNoVerify     bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Rewrite absolute links to the domain into local links, in place",
		Long: "fix rewrites every eligible file under the root until no recognizer matches, overwrites\n" +
			"changed files in place and then verifies that no absolute links remain.\n\n" +
			"Symbolic links are not followed: a symlinked file or directory is skipped, never rewritten.\n" +
			"Point --path at the real directory to process its contents.",
		Args: cobra.NoArgs,
		RunE: runFix,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "report what would change without writing")
	cmd.Flags().BoolVar(&flagDiff, "diff", false, "print changed lines before and after")
	cmd.Flags().BoolVar(&flagRequireClean, "require-clean", false, "refuse to run when the root has uncommitted git changes")
	cmd.Flags().BoolVar(&flagNoVerify, "no-verify", false, "skip the verification pass after rewriting")
}

func runFix(cmd *cobra.Command, _ []string) error {
	s, err := resolveSettings(cmd, true)
	if err != nil {
		return err
	}
	defer func() { _ = s.log.Sync() }()

	if flagRequireClean && !flagDryRun {
		if err := git.RequireClean(s.engine.Root); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	cfg := s.engine
	cfg.DryRun = flagDryRun
	cfg.KeepContent = flagDiff
	done := attachProgress(cmd, &cfg)
	res, err := engine.Fix(cmd.Context(), cfg)
	done()
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}

	verify := !flagNoVerify && !flagDryRun
	var vres engine.Result
	if verify {
		if vres, err = engine.Verify(cmd.Context(), s.engine); err != nil {
			return fmt.Errorf("verify: %w", err)
		}
	}

	if flagJSON {
		rep := &report.FixReport{
			Tool:         "relink",
			Version:      report.Version,
			Domain:       s.domain,
			Root:         cfg.Root,
			DryRun:       cfg.DryRun,
			FilesScanned: res.FilesScanned,
			FilesChanged: res.FilesChanged,
			Replacements: res.Replacements,
			DurationMS:   int64(res.Duration / time.Millisecond),
			Changes:      res.Changes,
			Unconverged:  res.Unconverged,
		}
		if verify {
			rep.Verify = verifyReport(s, vres)
		}
		return report.WriteJSON(out, rep)
	}

	opts := report.PrintOptions{NoColor: s.noColor, Root: displayRoot(cfg.Root)}
	if flagDiff {
		report.PrintPreview(out, res.Changes, opts)
	}
	report.PrintFix(out, report.FixSummary{
		Domain:       s.domain,
		DryRun:       cfg.DryRun,
		FilesScanned: res.FilesScanned,
		Changes:      res.Changes,
		Unconverged:  res.Unconverged,
	}, opts)
	if verify {
		fmt.Fprintln(out, report.MsgVerifyHeader)
		report.PrintText(out, vres.Findings, opts)
	}
	return nil
}
