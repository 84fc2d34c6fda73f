package report

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/relink/relink/internal/types"
)

var (
	delStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	addStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// PrintPreview writes a line-level before/after view of each change. Only
// lines that differ are shown, prefixed with their 1-based line number.
func PrintPreview(w io.Writer, changes []types.FileChange, opts PrintOptions) {
	for _, c := range changes {
		fmt.Fprintln(w, paint("--- "+displayPath(c.Path, opts), pathStyle, opts))
		before := strings.Split(c.Before, "\n")
		after := strings.Split(c.After, "\n")
		if len(before) != len(after) {
			// a match spanning lines; show the file wholesale
			for i, l := range before {
				printLine(w, "-", i+1, l, c.Path, opts)
			}
			for i, l := range after {
				printLine(w, "+", i+1, l, c.Path, opts)
			}
			continue
		}
		for i := range before {
			if before[i] == after[i] {
				continue
			}
			printLine(w, "-", i+1, before[i], c.Path, opts)
			printLine(w, "+", i+1, after[i], c.Path, opts)
		}
	}
}

func printLine(w io.Writer, sign string, n int, line, file string, opts PrintOptions) {
	prefix := fmt.Sprintf("%s%5d ", sign, n)
	if opts.NoColor {
		fmt.Fprintln(w, prefix+line)
		return
	}
	st := addStyle
	if sign == "-" {
		st = delStyle
	}
	fmt.Fprintln(w, st.Render(prefix)+highlightLine(line, file))
}

// highlightLine colors one line with chroma, picking the lexer by file
// name. Unknown types come back unchanged.
func highlightLine(line string, filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		ext := strings.ToLower(filepath.Ext(filename))
		if ext != "" {
			lexer = lexers.Match("file" + ext)
		}
	}
	if lexer == nil {
		return line
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return line
	}
	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return line
	}
	return strings.TrimRight(buf.String(), "\n")
}
