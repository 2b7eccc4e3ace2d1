// Package cpudispatch detects what the running processor can execute and
// selects, once per operation, the best implementation for it.
//
// Detection combines CPUID (x86), kernel hardware capabilities and cpuinfo
// (ARM, MIPS), sysfs cache topology and, where the kernel is silent, small
// instruction probes executed in disposable helper processes.
//
// # Quick Start
//
//	if err := cpudispatch.Init(); err != nil {
//		log.Fatal(err)
//	}
//	defer cpudispatch.Release()
//
//	fmt.Println(cpudispatch.FullName())
//	if cpudispatch.SimdFeatures().Has(feature.X86AVX2) {
//		// ...
//	}
//
// Init is reference counted. Libraries may call it from their own setup; only
// the first call detects. Detect builds an independent Capabilities value
// without touching the process default:
//
//	caps, err := cpudispatch.Detect(ctx, cpudispatch.WithInstructionProbing(false))
//
// # Dispatch
//
// Operations are described by dispatch tables and resolved lazily:
//
//	var sum = cpudispatch.NewCell("sum", dispatch.Table[func([]float32) float32]{
//		{Name: "avx2", Fn: sumAVX2, Requirement: dispatch.Requirement{SIMD: feature.X86AVX2}},
//		{Name: "generic", Fn: sumGeneric},
//	})
//
//	func Sum(x []float32) float32 { return sum.Get()(x) }
//
// # Strings
//
// GetString fills a caller buffer with the identifier or description of any
// enumerated value. String does the same and allocates:
//
//	s, _ := cpudispatch.String(cpudispatch.SIMDEnumeration(feature.ArchX86), 15, cpudispatch.StringID) // "AVX2"
//
// # Observability
//
// Detection, probe outcomes and dispatch resolutions are reported through
// WithLogger and WithMetrics:
//
//	metrics := &cpudispatch.BasicMetricsCollector{}
//	cpudispatch.Init(
//		cpudispatch.WithLogger(cpudispatch.NewTextLogger(slog.LevelDebug)),
//		cpudispatch.WithMetrics(metrics),
//	)
//
// # Environment
//
//   - CPUDISPATCH_DISABLE: comma-separated feature identifiers to clear after
//     detection, e.g. "AVX512F,AVX2".
//   - CPUDISPATCH_NO_PROBE: set to 1 to skip instruction probes.
package cpudispatch
