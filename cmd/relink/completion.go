package relink

import (
	"fmt"
	"strings"

	"github.com/relink/relink/internal/rewrite"
	"github.com/spf13/cobra"
)

var (
	logLevels   = []string{"debug", "info", "warn", "error"}
	ciProviders = []string{"github", "gitlab"}
)

// completeCategories offers recognizer names, with their descriptions, for
// the first positional argument.
func completeCategories(_ *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []cobra.Completion
	for _, c := range rewrite.Categories() {
		if strings.HasPrefix(string(c), toComplete) {
			out = append(out, cobra.CompletionWithDesc(string(c), rewrite.Describe(c)))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	cmd := &cobra.Command{
		Use:       "completion [bash|zsh|fish|powershell]",
		Short:     "Generate shell completion scripts",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return rootCmd.GenBashCompletion(out)
			case "zsh":
				return rootCmd.GenZshCompletion(out)
			case "fish":
				return rootCmd.GenFishCompletion(out, true)
			case "powershell":
				return rootCmd.GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
		Example: `
# Bash
relink completion bash > /etc/bash_completion.d/relink

# Zsh
relink completion zsh > "${fpath[1]}/_relink"

# Fish
relink completion fish > ~/.config/fish/completions/relink.fish

# PowerShell
relink completion powershell > $PROFILE\relink.ps1
`,
	}
	rootCmd.AddCommand(cmd)
}
