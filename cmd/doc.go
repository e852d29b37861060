// Package cmd implements the command-line interface of mapbench. It provides a
// hierarchical command structure for generating the workload, verifying the map
// engines and running the benchmark.
//
// The package is organized into several subpackages:
//
//   - bench: Runs the benchmark and prints or exports the results
//   - verify: Checks every engine against the reference sum without timing
//   - workload: Prints a summary (or a YAML dump) of the generated workload
//   - history: Lists results stored in a SQLite results database
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// Configuration is read from flags, MAPBENCH_* environment variables (also from .env and
// .env.local) and an optional YAML file passed with --config.
//
// See mapbench -help for a list of all commands.
package cmd
