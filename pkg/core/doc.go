// Package core provides a small, stable facade over relink's internal engine
// for external integrations: rewrite or inspect a single blob, or fix and
// verify a whole tree, without importing internal packages.
//
// Example:
//
//	cfg := core.Config{Root: "public", Domain: "home.example.com"}
//	res, err := core.Verify(context.Background(), cfg)
//	if err != nil { /* handle */ }
//	_ = core.MarshalFindings(os.Stdout, res.Findings)
package core
