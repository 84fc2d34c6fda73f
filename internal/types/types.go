package types

// Finding is an absolute link to the target domain left in a file. Line is
// 1-based and 0 when the text only appears after an earlier unescaping pass.
type Finding struct {
	Path        string `json:"path"`
	Line        int    `json:"line,omitempty"`
	Category    string `json:"category"`
	Match       string `json:"match"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// FileChange records one file rewritten (or, in a dry run, that would be).
type FileChange struct {
	Path         string `json:"path"`
	Replacements int    `json:"replacements"`
	Passes       int    `json:"passes"`
	Converged    bool   `json:"converged"`
	Before       string `json:"-"`
	After        string `json:"-"`
}
