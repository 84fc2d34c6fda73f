package relink

import (
	"encoding/json"
	"fmt"

	"github.com/relink/relink/internal/rewrite"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "recognizers",
		Short: "List link recognizers in the order they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if flagJSON {
				type entry struct {
					ID          string `json:"id"`
					Description string `json:"description"`
				}
				var list []entry
				for _, c := range rewrite.Categories() {
					list = append(list, entry{ID: string(c), Description: rewrite.Describe(c)})
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}
			for _, c := range rewrite.Categories() {
				fmt.Fprintf(out, "%-16s %s\n", c, rewrite.Describe(c))
			}
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}
