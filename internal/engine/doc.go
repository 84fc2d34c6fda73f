// Package engine walks a site tree and applies the link rewriter to every
// eligible file: Fix overwrites files in place, Verify only reports what is
// left. This package is internal; external consumers should use the stable
// facade in pkg/core.
package engine
