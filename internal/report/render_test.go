package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/relink/relink/internal/types"
)

func sampleFindings() []types.Finding {
	return []types.Finding{
		{Path: "about.html", Line: 3, Category: "html_attr", Match: `href="https://home.example.com/team"`},
		{Path: "about.html", Line: 9, Category: "generic", Match: "https://home.example.com"},
		{Path: "data/site.json", Line: 1, Category: "json_key", Match: `"url": "https://home.example.com/x"`},
	}
}

func TestPrintText_NoFindings(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, nil, PrintOptions{NoColor: true})
	if got := buf.String(); got != MsgOK+"\n" {
		t.Fatalf("expected only the OK line; got: %q", got)
	}
}

func TestPrintText_WithFindings(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, sampleFindings(), PrintOptions{NoColor: true, Root: "public"})
	want := "Non-local links found in: public/about.html\n" +
		"  href=\"https://home.example.com/team\"\n" +
		"  https://home.example.com\n" +
		"Non-local links found in: public/data/site.json\n" +
		"  \"url\": \"https://home.example.com/x\"\n" +
		MsgWarning + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintTable_WithFindings(t *testing.T) {
	var buf bytes.Buffer
	fs := sampleFindings()
	fs = append(fs, types.Finding{Path: "x.json", Category: "generic", Match: "https://home.example.com/y"})
	PrintTable(&buf, fs, PrintOptions{NoColor: true, FilesScanned: 4})
	out := buf.String()
	for _, want := range []string{"CATEGORY", "json_key", "data/site.json", MsgWarning, "Findings: 4", "Files scanned: 4"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table output; got: %q", want, out)
		}
	}
}

func TestPrintTable_NoFindings_ShowsFooter(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, nil, PrintOptions{NoColor: true, Duration: 1200 * time.Millisecond, FilesScanned: 10})
	out := buf.String()
	if !strings.HasPrefix(out, MsgOK) {
		t.Fatalf("expected OK message first; got: %q", out)
	}
	if !strings.Contains(out, "Files scanned: 10") || !strings.Contains(out, "Duration: 1.20s") {
		t.Fatalf("expected footer with stats; got: %q", out)
	}
}

func TestPrintFix(t *testing.T) {
	var buf bytes.Buffer
	PrintFix(&buf, FixSummary{Domain: "home.example.com", FilesScanned: 2, Unconverged: []string{"a.json"}}, PrintOptions{NoColor: true})
	out := buf.String()
	if !strings.HasSuffix(out, "All links to home.example.com have been converted to local links.\n") {
		t.Fatalf("expected banner last; got: %q", out)
	}
	if !strings.Contains(out, "Pass limit reached") {
		t.Fatalf("expected pass limit warning; got: %q", out)
	}

	buf.Reset()
	changes := []types.FileChange{{Path: "a.html", Replacements: 2}, {Path: "b.json", Replacements: 1}}
	PrintFix(&buf, FixSummary{Domain: "home.example.com", DryRun: true, FilesScanned: 5, Changes: changes}, PrintOptions{NoColor: true})
	out = buf.String()
	if strings.Contains(out, "have been converted") {
		t.Fatalf("dry run must not print the banner; got: %q", out)
	}
	if !strings.Contains(out, "would rewrite a.html (2 link(s))") || !strings.Contains(out, "3 link(s) in 2 of 5 file(s)") {
		t.Fatalf("unexpected dry-run output: %q", out)
	}
}

func TestPrintPreview_ChangedLinesOnly(t *testing.T) {
	var buf bytes.Buffer
	c := types.FileChange{
		Path:   "index.html",
		Before: "<p>hi</p>\n<a href=\"https://home.example.com/about\">\n<p>bye</p>",
		After:  "<p>hi</p>\n<a href=\"/about\">\n<p>bye</p>",
	}
	PrintPreview(&buf, []types.FileChange{c}, PrintOptions{NoColor: true})
	want := "--- index.html\n" +
		"-    2 <a href=\"https://home.example.com/about\">\n" +
		"+    2 <a href=\"/about\">\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected preview:\n%q\nwant:\n%q", got, want)
	}
}

func TestHighlightLine_UnknownTypeUnchanged(t *testing.T) {
	if got := highlightLine("plain", "notes.unknownext"); got != "plain" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}
