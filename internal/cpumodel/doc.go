// Package cpumodel turns raw platform facts into the feature model.
//
// Build takes the record produced by internal/probe and derives the vendor,
// microarchitecture, ISA, SIMD and system masks, cache hierarchy and printable
// CPU names. A bit is only ever set on positive evidence: a missing cpuinfo
// field, an unknown token or a probe that could not run leaves it clear.
package cpumodel
