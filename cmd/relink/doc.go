// Package relink provides the command-line interface for relink. It wires
// subcommands (fix, verify, recognizers, config, ignore, ci), resolves flags
// against config files and runs the engine.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/relink/relink/cmd/relink"
//	func main() { relink.Execute() }
package relink
