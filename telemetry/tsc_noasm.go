//go:build noasm && (386 || amd64)

package telemetry

import "github.com/klauspost/cpuid/v2"

// Without assembly the only counter read is RDTSCP, which reports zero on
// processors that lack it.
const haveSerializedTSC = false

func serializedTSC() uint64 { return cpuid.CPU.RTCounter() }
