package relink

import (
	"fmt"

	"github.com/relink/relink/internal/files"
	"github.com/spf13/cobra"
)

func init() {
	ign := &cobra.Command{Use: "ignore", Short: "Manage the .relinkignore file"}
	rootCmd.AddCommand(ign)

	var defaults bool
	add := &cobra.Command{
		Use:   "add [pattern...]",
		Short: "Append patterns to .relinkignore in the site root",
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns := args
			if defaults {
				patterns = append(patterns, files.DefaultGeneratedIgnores()...)
			}
			if len(patterns) == 0 {
				return fmt.Errorf("no pattern given (pass one or use --defaults)")
			}
			out := cmd.OutOrStdout()
			for _, p := range patterns {
				added, err := files.AppendIgnore(flagPath, p)
				if err != nil {
					return err
				}
				if added {
					fmt.Fprintf(out, "Added %s to %s\n", p, files.IgnoreFile)
				} else {
					fmt.Fprintf(out, "%s already in %s\n", p, files.IgnoreFile)
				}
			}
			return nil
		},
	}
	add.Flags().BoolVar(&defaults, "defaults", false, "also add common generated-file patterns")
	ign.AddCommand(add)
}
