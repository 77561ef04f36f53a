// Package core provides a small, stable facade over digitfactor's internal
// search engine for external integrations. It re-exports a narrow API
// surface so that other programs can depend on a stable import path without
// importing internal implementation packages.
//
// Example:
//
//	n, err := core.Parse("15129")
//	if err != nil { /* handle */ }
//	res, err := core.FactorWithStats(context.Background(), n, core.Config{})
//	if err != nil { /* handle */ }
//	_ = core.WriteResult(os.Stdout, res)
package core
