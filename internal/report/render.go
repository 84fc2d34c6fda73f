package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/relink/relink/internal/types"
)

// Console messages. Scripts parse these lines, so the wording is fixed.
const (
	MsgVerifyHeader = "\n[Verification Only] Checking for any non-local links..."
	MsgFoundIn      = "Non-local links found in: "
	MsgOK           = "[OK] All links are now local!"
	MsgWarning      = "[WARNING] Some links are still not local. See above."
)

// Banner is printed after a rewrite run completes.
func Banner(domain string) string {
	return "All links to " + domain + " have been converted to local links."
}

type PrintOptions struct {
	NoColor bool
	// Root is joined in front of finding paths when printing.
	Root         string
	Duration     time.Duration
	FilesScanned int
}

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

func paint(s string, st lipgloss.Style, opts PrintOptions) string {
	if opts.NoColor {
		return s
	}
	return st.Render(s)
}

func displayPath(p string, opts PrintOptions) string {
	if opts.Root == "" {
		return p
	}
	return filepath.ToSlash(filepath.Join(opts.Root, filepath.FromSlash(p)))
}

// PrintText writes findings grouped by file followed by the OK/WARNING
// verdict. Files appear in walk order and matches in detection order.
func PrintText(w io.Writer, findings []types.Finding, opts PrintOptions) {
	last := ""
	for i, f := range findings {
		if i == 0 || f.Path != last {
			fmt.Fprintln(w, MsgFoundIn+paint(displayPath(f.Path, opts), pathStyle, opts))
			last = f.Path
		}
		fmt.Fprintln(w, "  "+f.Match)
	}
	PrintVerdict(w, len(findings) == 0, opts)
}

// PrintVerdict writes the single OK or WARNING line.
func PrintVerdict(w io.Writer, clean bool, opts PrintOptions) {
	if clean {
		fmt.Fprintln(w, paint(MsgOK, okStyle, opts))
		return
	}
	fmt.Fprintln(w, paint(MsgWarning, warnStyle, opts))
}

// PrintTable renders findings as a bordered table with a stats footer.
func PrintTable(w io.Writer, findings []types.Finding, opts PrintOptions) {
	if len(findings) == 0 {
		fmt.Fprintln(w, paint(MsgOK, okStyle, opts))
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("PATH", "LINE", "CATEGORY", "MATCH")
		for _, f := range findings {
			line := "-"
			if f.Line > 0 {
				line = strconv.Itoa(f.Line)
			}
			_ = table.Append([]string{displayPath(f.Path, opts), line, f.Category, f.Match})
		}
		_ = table.Render()
		fmt.Fprintln(w, paint(MsgWarning, warnStyle, opts))
	}
	PrintSummary(w, len(findings), opts)
}

// PrintSummary writes the stats footer when stats are available.
func PrintSummary(w io.Writer, n int, opts PrintOptions) {
	if opts.Duration <= 0 && opts.FilesScanned <= 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, paint(fmt.Sprintf("Findings: %d", n), dimStyle, opts))
	if opts.Duration > 0 {
		fmt.Fprintln(w, paint(fmt.Sprintf("Duration: %.2fs", opts.Duration.Seconds()), dimStyle, opts))
	}
	if opts.FilesScanned > 0 {
		fmt.Fprintln(w, paint(fmt.Sprintf("Files scanned: %d", opts.FilesScanned), dimStyle, opts))
	}
}

// FixSummary describes a completed Fix run for PrintFix.
type FixSummary struct {
	Domain       string
	DryRun       bool
	FilesScanned int
	Changes      []types.FileChange
	Unconverged  []string
}

// PrintFix writes the per-file change list (dry runs only), pass-cap
// warnings and the completion banner.
func PrintFix(w io.Writer, s FixSummary, opts PrintOptions) {
	if s.DryRun {
		for _, c := range s.Changes {
			fmt.Fprintf(w, "would rewrite %s (%d link(s))\n", paint(displayPath(c.Path, opts), pathStyle, opts), c.Replacements)
		}
	}
	for _, p := range s.Unconverged {
		fmt.Fprintln(w, paint("[WARNING] Pass limit reached, output may still change: "+displayPath(p, opts), warnStyle, opts))
	}
	if s.DryRun {
		total := 0
		for _, c := range s.Changes {
			total += c.Replacements
		}
		fmt.Fprintf(w, "Dry run: %d link(s) in %d of %d file(s) would be converted.\n", total, len(s.Changes), s.FilesScanned)
		return
	}
	fmt.Fprintln(w, Banner(s.Domain))
}
