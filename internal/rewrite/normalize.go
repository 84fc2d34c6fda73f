package rewrite

import "strings"

// localRest normalizes what follows the host in a generic match: one leading
// separator (escaped or not) is dropped and escaped separators are collapsed.
func localRest(rest string) string {
	switch {
	case strings.HasPrefix(rest, `\/`):
		rest = rest[2:]
	case strings.HasPrefix(rest, "/"):
		rest = rest[1:]
	}
	return strings.ReplaceAll(rest, `\/`, "/")
}

// LocalPath converts an absolute URL on the target domain, with literal or
// backslash-escaped slashes, into its local form. Input that does not start
// with the target origin is returned unchanged.
//
//	https://home.example.com/a/b          -> a/b
//	https:\/\/home.example.com\/a\/b      -> a/b
//	https://home.example.com#top          -> #top
func (r *Rewriter) LocalPath(raw string) string {
	loc := r.origin.FindStringIndex(raw)
	if loc == nil {
		return raw
	}
	rest := raw[loc[1]:]
	if rest != "" && rest[0] != '/' && rest[0] != '\\' && rest[0] != '#' && rest[0] != '?' {
		return raw
	}
	return localRest(rest)
}
