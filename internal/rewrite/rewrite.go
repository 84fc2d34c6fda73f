package rewrite

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultMaxPasses bounds the fixed-point loop. Real content converges in two
// or three sweeps.
const DefaultMaxPasses = 50

var (
	ErrEmptyDomain   = errors.New("empty target domain")
	ErrInvalidDomain = errors.New("invalid target domain")
)

// Match is one substring recognized as an absolute link to the target domain.
type Match struct {
	Category Category `json:"category"`
	Text     string   `json:"text"`
}

// Result is the outcome of Rewrite.
type Result struct {
	Content      string
	Changed      bool
	Replacements int
	// Passes counts full sweeps, including the final one that changed nothing.
	Passes int
	// Converged is false when MaxPasses was reached while sweeps still changed content.
	Converged bool
}

// Rewriter holds the compiled recognizer table for one target domain. It is
// immutable and safe to share.
type Rewriter struct {
	domain    string
	maxPasses int
	table     []recognizer
	origin    *regexp.Regexp
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithMaxPasses overrides DefaultMaxPasses; values < 1 are ignored.
func WithMaxPasses(n int) Option {
	return func(r *Rewriter) {
		if n >= 1 {
			r.maxPasses = n
		}
	}
}

// New compiles the recognizers for domain, a bare host such as
// "home.example.com".
func New(domain string, opts ...Option) (*Rewriter, error) {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return nil, ErrEmptyDomain
	}
	if strings.ContainsAny(domain, "/\\:@?# \t\r\n\"'") {
		return nil, fmt.Errorf("%w: %q (want a bare host name)", ErrInvalidDomain, domain)
	}
	r := &Rewriter{
		domain:    domain,
		maxPasses: DefaultMaxPasses,
		table:     buildTable(domain),
		origin:    regexp.MustCompile(`(?i)^https?:\\?/\\?/` + regexp.QuoteMeta(domain)),
	}
	for _, o := range opts {
		o(r)
	}
	return r, nil
}

// Domain returns the target domain.
func (r *Rewriter) Domain() string { return r.domain }

// MaxPasses returns the sweep cap.
func (r *Rewriter) MaxPasses() int { return r.maxPasses }

// Recognizers lists the active categories in sweep order.
func (r *Rewriter) Recognizers() []Category {
	out := make([]Category, 0, len(r.table))
	for _, rc := range r.table {
		out = append(out, rc.cat)
	}
	return out
}

// Only returns a Rewriter restricted to the given categories, keeping table
// order. Unknown categories are ignored.
func (r *Rewriter) Only(cats ...Category) *Rewriter {
	want := make(map[Category]bool, len(cats))
	for _, c := range cats {
		want[c] = true
	}
	cp := *r
	cp.table = nil
	for _, rc := range r.table {
		if want[rc.cat] {
			cp.table = append(cp.table, rc)
		}
	}
	return &cp
}

// Rewrite sweeps all recognizers over content until a sweep changes nothing.
func (r *Rewriter) Rewrite(content string) Result {
	return r.run(content, nil)
}

// Detect returns the substrings Rewrite would replace, grouped by category
// in sweep order. Matches exposed by an earlier sweep (for example a URL whose
// escaping the generic recognizer collapsed) are included.
func (r *Rewriter) Detect(content string) []Match {
	byCat := map[Category][]string{}
	r.run(content, func(c Category, s string) {
		byCat[c] = append(byCat[c], s)
	})
	var out []Match
	for _, rc := range r.table {
		for _, s := range byCat[rc.cat] {
			out = append(out, Match{Category: rc.cat, Text: s})
		}
	}
	return out
}

func (r *Rewriter) run(content string, record func(Category, string)) Result {
	res := Result{Content: content}
	for res.Passes < r.maxPasses {
		res.Passes++
		changed := false
		for _, rc := range r.table {
			out, n := rc.apply(res.Content, record)
			if n > 0 {
				res.Content = out
				res.Replacements += n
				changed = true
			}
		}
		if !changed {
			res.Converged = true
			return res
		}
		res.Changed = true
	}
	return res
}
