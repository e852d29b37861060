// Package report prints and stores runner results.
//
// Results can be written as an aligned text table (WriteTable), as CSV (WriteCSV,
// WriteCSVFile) or as YAML (WriteYAML). Store keeps a history of runs in a SQLite database
// (pure Go driver, no cgo) so results of different runs, profiles and machines can be
// compared later; every row carries the run ID and workload identity of its run.
package report
