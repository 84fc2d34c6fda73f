// Package rewrite localizes absolute links to a single target domain. A fixed,
// ordered table of recognizers (HTML attributes, JSON keys, markup embedded in
// JSON strings, and a generic catch-all) is swept over a text blob until a full
// sweep changes nothing. Detect reports the same matches without mutating the
// caller's content.
package rewrite
