package report

import (
	"encoding/json"
	"io"

	"github.com/relink/relink/internal/types"
)

// VerifyReport is the --json shape of a verification run.
type VerifyReport struct {
	Tool         string          `json:"tool"`
	Version      string          `json:"version"`
	Domain       string          `json:"domain"`
	Root         string          `json:"root"`
	FilesScanned int             `json:"files_scanned"`
	DurationMS   int64           `json:"duration_ms"`
	Clean        bool            `json:"clean"`
	Findings     []types.Finding `json:"findings"`
}

// FixReport is the --json shape of a fix run.
type FixReport struct {
	Tool         string             `json:"tool"`
	Version      string             `json:"version"`
	Domain       string             `json:"domain"`
	Root         string             `json:"root"`
	DryRun       bool               `json:"dry_run"`
	FilesScanned int                `json:"files_scanned"`
	FilesChanged int                `json:"files_changed"`
	Replacements int                `json:"replacements"`
	DurationMS   int64              `json:"duration_ms"`
	Changes      []types.FileChange `json:"changes"`
	Unconverged  []string           `json:"unconverged,omitempty"`
	Verify       *VerifyReport      `json:"verify,omitempty"`
}

// WriteJSON encodes v with two-space indentation. Nil finding and change
// slices are written as empty arrays.
func WriteJSON(w io.Writer, v any) error {
	switch r := v.(type) {
	case *VerifyReport:
		fillVerify(r)
	case *FixReport:
		if r.Changes == nil {
			r.Changes = []types.FileChange{}
		}
		if r.Verify != nil {
			fillVerify(r.Verify)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func fillVerify(r *VerifyReport) {
	if r.Tool == "" {
		r.Tool = "relink"
	}
	if r.Version == "" {
		r.Version = Version
	}
	if r.Findings == nil {
		r.Findings = []types.Finding{}
	}
	r.Clean = len(r.Findings) == 0
}
