package rewrite

import (
	"regexp"
	"strings"
)

// Category names the syntactic context a recognizer matches.
type Category string

const (
	HTMLAttr       Category = "html_attr"
	JSONKey        Category = "json_key"
	EmbeddedAnchor Category = "embedded_anchor"
	EmbeddedIframe Category = "embedded_iframe"
	Generic        Category = "generic"
)

// Categories returns every category in sweep order.
func Categories() []Category {
	return []Category{HTMLAttr, JSONKey, EmbeddedAnchor, EmbeddedIframe, Generic}
}

// Describe returns a one-line description of a category.
func Describe(c Category) string {
	switch c {
	case HTMLAttr:
		return `href/src/content/data-srcset="https://DOMAIN/..." attributes`
	case JSONKey:
		return `"url"/"@id"/"src"/"contentUrl": "https://DOMAIN/..." keys`
	case EmbeddedAnchor:
		return `<a ... href=...> markup, including escaped quotes inside JSON strings`
	case EmbeddedIframe:
		return `<iframe ... src=...> markup, including escaped quotes inside JSON strings`
	case Generic:
		return "any remaining mention of the domain, with literal or escaped slashes"
	}
	return ""
}

// recognizer pairs a pattern with the replacement for one match. replace gets
// the content and the submatch index pairs; ok=false leaves the match as is.
type recognizer struct {
	cat     Category
	re      *regexp.Regexp
	replace func(s string, m []int) (out string, ok bool)
}

func group(s string, m []int, i int) string {
	if m[2*i] < 0 {
		return ""
	}
	return s[m[2*i]:m[2*i+1]]
}

// rootRelative turns the path captured after "DOMAIN/" into a root-relative
// path with exactly one leading slash.
func rootRelative(p string) string {
	return "/" + strings.TrimLeft(p, "/")
}

func buildTable(domain string) []recognizer {
	d := regexp.QuoteMeta(domain)
	abs := `https?://` + d + `/`

	htmlAttr := regexp.MustCompile(`(?i)(href|src|content|data-srcset)(\s*=\s*)(?:"\s*` + abs + `([^'"]+)"|'\s*` + abs + `([^'"]+)')`)
	jsonKey := regexp.MustCompile(`(?i)("(?:url|@id|src|contentUrl)")(\s*:\s*)"` + abs + `([^"]+)"`)
	anchor := regexp.MustCompile(`(?i)(<a\s+[^>]*href\s*=\s*\\?['"])` + abs + `([^'"]+)(['"])`)
	iframe := regexp.MustCompile(`(?i)(<iframe\s+[^>]*src\s*=\s*\\?['"])` + abs + `([^'"]+)(['"])`)
	// a backslash is only part of the path when it escapes a slash, so the
	// \" closing an escaped JSON string is left in place
	generic := regexp.MustCompile(`(?i)https?:\\?/\\?/` + d + `((?:\\?/|[#?])(?:\\/|[^\s"'<>\]}\\])*)?`)

	return []recognizer{
		{cat: HTMLAttr, re: htmlAttr, replace: func(s string, m []int) (string, bool) {
			q, p := `"`, group(s, m, 3)
			if m[6] < 0 {
				q, p = `'`, group(s, m, 4)
			}
			return group(s, m, 1) + group(s, m, 2) + q + rootRelative(p) + q, true
		}},
		{cat: JSONKey, re: jsonKey, replace: func(s string, m []int) (string, bool) {
			return group(s, m, 1) + group(s, m, 2) + `"` + rootRelative(group(s, m, 3)) + `"`, true
		}},
		{cat: EmbeddedAnchor, re: anchor, replace: wrapped},
		{cat: EmbeddedIframe, re: iframe, replace: wrapped},
		{cat: Generic, re: generic, replace: func(s string, m []int) (string, bool) {
			rest := group(s, m, 1)
			if rest == "" && hostContinues(s, m[1]) {
				return "", false
			}
			return localRest(rest), true
		}},
	}
}

func wrapped(s string, m []int) (string, bool) {
	return group(s, m, 1) + rootRelative(group(s, m, 2)) + group(s, m, 3), true
}

// hostContinues reports whether the byte at i extends the host name, which
// means the match was a prefix of some other host (home.example.com.evil.org,
// home.example.comx), carried a port, or was userinfo in front of the real
// host (home.example.com@evil.org).
func hostContinues(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	c := s[i]
	if isHostChar(c) || c == '@' {
		return true
	}
	if (c == '.' || c == ':') && i+1 < len(s) && isAlnum(s[i+1]) {
		return true
	}
	return false
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func isHostChar(c byte) bool {
	return isAlnum(c) || c == '-' || c == '_'
}

// apply replaces every non-overlapping match of r in s. record, when set,
// receives each replaced substring.
func (r recognizer) apply(s string, record func(Category, string)) (string, int) {
	idx := r.re.FindAllStringSubmatchIndex(s, -1)
	if len(idx) == 0 {
		return s, 0
	}
	var b strings.Builder
	b.Grow(len(s))
	last, n := 0, 0
	for _, m := range idx {
		out, ok := r.replace(s, m)
		if !ok {
			continue
		}
		b.WriteString(s[last:m[0]])
		b.WriteString(out)
		last = m[1]
		n++
		if record != nil {
			record(r.cat, s[m[0]:m[1]])
		}
	}
	if n == 0 {
		return s, 0
	}
	b.WriteString(s[last:])
	return b.String(), n
}
