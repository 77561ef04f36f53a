// Package engine contains the digit search used by digitfactor. It builds
// candidate factor pairs one decimal digit at a time, prunes pairs whose
// trailing digits cannot match the target, and verifies the survivors by
// exact multiplication. This package is internal; external consumers should
// use the stable facade in pkg/core.
package engine
