// Package dispatch selects, once per operation, the best implementation the
// running CPU can execute.
//
// # Tables
//
// A Table lists implementations of one operation, each guarded by a
// Requirement. The entry with the zero Requirement is the fallback and must
// be present:
//
//	var sumTable = dispatch.Table[func([]float32) float32]{
//		{Name: "avx2", Fn: sumAVX2, Requirement: dispatch.Requirement{SIMD: feature.X86AVX2}},
//		{Name: "sse2", Fn: sumSSE2, Requirement: dispatch.Requirement{SIMD: feature.X86SSE2}},
//		{Name: "generic", Fn: sumGeneric},
//	}
//
// # Cells
//
// A Cell resolves its table lazily, on the first Get, and publishes the
// choice with a single compare-and-swap. Concurrent first calls may each
// compute a choice; exactly one is published and every caller uses it.
//
//	var sum = dispatch.NewCell(sumTable, cpudispatch.DefaultSource())
//
//	func Sum(x []float32) float32 { return sum.Get()(x) }
package dispatch
