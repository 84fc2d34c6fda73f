package relink

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/relink/relink/internal/report"
	"github.com/spf13/cobra"
)

var (
	flagDomain          string
	flagPath            string
	flagExt             string
	flagInclude         string
	flagExclude         string
	flagMaxBytes        int64
	flagMaxPasses       int
	flagDefaultExcludes bool
	flagNoColor         bool
	flagJSON            bool
	flagLogLevel        string
)

// errFindingsRemain makes Execute exit 1 without printing an error line;
// the report itself already said what is left.
var errFindingsRemain = errors.New("non-local links remain")

// rootCmd is the base Cobra command for the relink CLI.
var rootCmd = &cobra.Command{
	Use:   "relink",
	Short: "Convert absolute links to one domain into local links",
	Long: "relink rewrites absolute URLs that point at a single domain into local paths across a\n" +
		"tree of HTML and JSON files, and verifies that none remain.",
	Version:       report.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the relink CLI. It should be called by the main package.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if errors.Is(err, errFindingsRemain) {
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagDomain, "domain", "d", "", "target domain whose absolute links become local (e.g. home.example.com)")
	pf.StringVarP(&flagPath, "path", "p", ".", "root directory of the site tree")
	pf.StringVar(&flagExt, "ext", ".html,.json", "comma-separated file extensions to process")
	pf.StringVar(&flagInclude, "include", "", "comma-separated include globs")
	pf.StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	pf.Int64Var(&flagMaxBytes, "max-bytes", 0, "skip files larger than this (0 = no limit)")
	pf.IntVar(&flagMaxPasses, "max-passes", 50, "upper bound on rewrite sweeps per file")
	pf.BoolVar(&flagDefaultExcludes, "default-excludes", true, "skip VCS/tool directories and lockfiles")
	pf.BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	pf.BoolVar(&flagJSON, "json", false, "emit JSON")
	pf.StringVar(&flagLogLevel, "log-level", "warn", "diagnostic log level on stderr: debug|info|warn|error")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", cobra.FixedCompletions(logLevels, cobra.ShellCompDirectiveNoFileComp))
	_ = rootCmd.RegisterFlagCompletionFunc("path", func(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveFilterDirs
	})
}
