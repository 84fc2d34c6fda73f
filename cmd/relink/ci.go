package relink

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func init() {
	ci := &cobra.Command{Use: "ci", Short: "CI template helpers"}
	rootCmd.AddCommand(ci)

	var provider string
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a CI job that fails when absolute links to the domain remain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			verify := "relink verify --fail"
			if flagDomain != "" {
				verify += " --domain " + flagDomain
			}
			if flagPath != "" && flagPath != "." {
				verify += " --path " + flagPath
			}
			var path, content string
			switch provider {
			case "github":
				path = filepath.Join(".github", "workflows", "relink.yml")
				content = `name: relink
on: [push, pull_request]
jobs:
  links:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - uses: actions/setup-go@v5
        with:
          go-version: '1.25'
      - run: go install github.com/relink/relink@latest
      - run: ` + verify + ` --sarif > relink.sarif || (cat relink.sarif; exit 1)
      - uses: github/codeql-action/upload-sarif@v3
        if: always()
        with:
          sarif_file: relink.sarif
`
			case "gitlab":
				path = ".gitlab-ci.yml"
				content = `stages: [verify]
relink:
  stage: verify
  image: golang:1.25
  script:
    - go install github.com/relink/relink@latest
    - ` + verify + ` --json | tee relink-findings.json
  artifacts:
    when: always
    paths:
      - relink-findings.json
`
			default:
				return fmt.Errorf("unknown --provider %q. Supported: github, gitlab", provider)
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&provider, "provider", "", "CI provider: github | gitlab")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	if err := initCmd.MarkFlagRequired("provider"); err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not mark --provider as required:", err)
	}
	_ = initCmd.RegisterFlagCompletionFunc("provider", cobra.FixedCompletions(ciProviders, cobra.ShellCompDirectiveNoFileComp))
	ci.AddCommand(initCmd)
}
