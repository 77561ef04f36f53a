// Package digitfactor provides the command-line interface for the digitfactor
// tool. It configures subcommands (factor, history, config, completion),
// parses flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/varalys/digitfactor/cmd/digitfactor"
//	func main() { digitfactor.Execute() }
package digitfactor
