package relink

import (
	"fmt"
	"io"
	"time"

	"github.com/relink/relink/internal/engine"
	"github.com/relink/relink/internal/report"
	"github.com/spf13/cobra"
)

var (
	flagTable bool
	flagSARIF bool
	flagFail  bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Report absolute links to the domain that are still present",
		Long: "verify walks the tree without modifying anything and lists every remaining absolute\n" +
			"link to the target domain, grouped by file.",
		Args: cobra.NoArgs,
		RunE: runVerify,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().BoolVar(&flagTable, "table", false, "output findings as a table")
	cmd.Flags().BoolVar(&flagSARIF, "sarif", false, "emit SARIF 2.1.0")
	cmd.Flags().BoolVar(&flagFail, "fail", false, "exit 1 when non-local links remain")
}

func runVerify(cmd *cobra.Command, _ []string) error {
	s, err := resolveSettings(cmd, true)
	if err != nil {
		return err
	}
	defer func() { _ = s.log.Sync() }()

	out := cmd.OutOrStdout()
	human := !flagJSON && !flagSARIF
	if human {
		fmt.Fprintln(out, report.MsgVerifyHeader)
	}
	cfg := s.engine
	done := attachProgress(cmd, &cfg)
	res, err := engine.Verify(cmd.Context(), cfg)
	done()
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if err := writeVerify(out, s, res); err != nil {
		return err
	}
	if flagFail && len(res.Findings) > 0 {
		return errFindingsRemain
	}
	return nil
}

func writeVerify(out io.Writer, s settings, res engine.Result) error {
	opts := report.PrintOptions{NoColor: s.noColor, Root: displayRoot(s.engine.Root)}
	switch {
	case flagSARIF:
		return report.WriteSARIF(out, res.Findings, s.domain)
	case flagJSON:
		return report.WriteJSON(out, verifyReport(s, res))
	case flagTable:
		opts.Duration = res.Duration
		opts.FilesScanned = res.FilesScanned
		report.PrintTable(out, res.Findings, opts)
	default:
		report.PrintText(out, res.Findings, opts)
	}
	return nil
}

func verifyReport(s settings, res engine.Result) *report.VerifyReport {
	return &report.VerifyReport{
		Version:      report.Version,
		Domain:       s.domain,
		Root:         s.engine.Root,
		FilesScanned: res.FilesScanned,
		DurationMS:   int64(res.Duration / time.Millisecond),
		Findings:     res.Findings,
	}
}

// displayRoot drops the current-directory prefix so paths print as they
// would be typed.
func displayRoot(root string) string {
	if root == "." || root == "./" {
		return ""
	}
	return root
}
