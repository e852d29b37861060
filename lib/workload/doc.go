// Package workload generates the reproducible input shared by every map engine in a benchmark
// run.
//
// A Workload consists of:
//   - Records: size unique key/value pairs in insertion order. Keys are the base-10 rendering
//     of non-negative pseudo-random integers, values are the index of the draw that produced
//     the key.
//   - QueryKeys: a Fisher-Yates permutation of the record keys, so lookups happen in a
//     different order than inserts.
//   - ReferenceSum: the sum of all values in a 64-bit accumulator. Looking up every query key
//     in a correct map and summing the values found must reproduce it exactly.
//
// The pseudo-random source is Knuth's subtractive generator (see NewSource). Given the same
// seed and size, Generate produces byte-identical workloads across runs, machines and
// reimplementations of the same seeded algorithm. Digest condenses a workload into a short
// fingerprint that can be compared between such runs.
//
// Generation is bounded: when the source keeps repeating itself and the attempt budget is
// exhausted before enough unique keys were drawn, a *GenerationError is returned instead of
// looping forever or returning a short workload.
package workload
