package relink

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/relink/relink/internal/rewrite"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "test-recognizer [category]",
		Short: "Run one or all recognizers against text on stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTestRecognizer,

		ValidArgsFunction: completeCategories,
	}
	cmd.Long = "Reads stdin, prints every match and then the rewritten text.\n\nAvailable recognizers: " + strings.Join(categoryNames(), ", ")
	rootCmd.AddCommand(cmd)
}

func categoryNames() []string {
	var out []string
	for _, c := range rewrite.Categories() {
		out = append(out, string(c))
	}
	return out
}

func runTestRecognizer(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd, true)
	if err != nil {
		return err
	}
	rw, err := rewrite.New(s.domain, rewrite.WithMaxPasses(s.engine.MaxPasses))
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cat := rewrite.Category(args[0])
		if rewrite.Describe(cat) == "" {
			return fmt.Errorf("unknown recognizer %q (available: %s)", args[0], strings.Join(categoryNames(), ", "))
		}
		rw = rw.Only(cat)
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return err
	}
	content := string(data)
	matches := rw.Detect(content)
	res := rw.Rewrite(content)

	out := cmd.OutOrStdout()
	if flagJSON {
		if matches == nil {
			matches = []rewrite.Match{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Matches   []rewrite.Match `json:"matches"`
			Output    string          `json:"output"`
			Changed   bool            `json:"changed"`
			Passes    int             `json:"passes"`
			Converged bool            `json:"converged"`
		}{matches, res.Content, res.Changed, res.Passes, res.Converged})
	}
	if len(matches) == 0 {
		fmt.Fprintln(out, "no matches")
	}
	for _, m := range matches {
		fmt.Fprintf(out, "%-16s %s\n", m.Category, m.Text)
	}
	fmt.Fprintln(out, "---")
	fmt.Fprint(out, res.Content)
	if !strings.HasSuffix(res.Content, "\n") {
		fmt.Fprintln(out)
	}
	return nil
}
