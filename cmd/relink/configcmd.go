package relink

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/relink/relink/internal/config"
	"github.com/relink/relink/internal/rewrite"
	"github.com/spf13/cobra"
)

var (
	cfgOutput          string
	cfgForce           bool
	cfgMaxBytes        int64
	cfgMaxPasses       int
	cfgNoColor         bool
	cfgDefaultExcludes bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .relink.yml in the site root",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgOutput, "output", config.LocalNames[0], "output file, relative to --path")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")
	initCmd.Flags().Int64Var(&cfgMaxBytes, "max-bytes", 0, "skip files larger than this (0 = no limit)")
	initCmd.Flags().IntVar(&cfgMaxPasses, "max-passes", rewrite.DefaultMaxPasses, "upper bound on rewrite sweeps per file")
	initCmd.Flags().BoolVar(&cfgNoColor, "no-color", false, "disable color output by default")
	initCmd.Flags().BoolVar(&cfgDefaultExcludes, "default-excludes", true, "skip VCS/tool directories and lockfiles")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	var domain *string
	if flagDomain != "" {
		d, err := config.NormalizeDomain(flagDomain)
		if err != nil {
			return err
		}
		domain = strPtr(d)
	}
	fc := config.FileConfig{
		Domain:          domain,
		Extensions:      strPtr(flagExt),
		Include:         optStrPtr(flagInclude),
		Exclude:         optStrPtr(flagExclude),
		MaxBytes:        int64Ptr(cfgMaxBytes),
		MaxPasses:       intPtr(cfgMaxPasses),
		DefaultExcludes: boolPtr(cfgDefaultExcludes),
		NoColor:         boolPtr(cfgNoColor),
		LogLevel:        strPtr(flagLogLevel),
	}
	b, err := config.Marshal(fc)
	if err != nil {
		return err
	}
	path := cfgOutput
	if !filepath.IsAbs(path) {
		path = filepath.Join(flagPath, path)
	}
	if _, err := os.Stat(path); err == nil && !cfgForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
	return nil
}
