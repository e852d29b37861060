// Package util provides small helpers shared by the mapbench packages.
//
// The package contains:
//   - statistics: summary statistics (mean, standard deviation, min/max) over a series of
//     measurements and a distribution quality score used to judge how evenly a set of buckets
//     is filled
//   - functions: the FNV-1a string hash used as an alternative hasher for the hamt package
//     and a zero-copy string to byte slice conversion for byte-keyed engines
//
// Nothing in this package allocates on the hot path of a probe, so it can be used from
// benchmark code without distorting results.
package util
