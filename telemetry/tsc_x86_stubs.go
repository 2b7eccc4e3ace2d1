//go:build !noasm && (386 || amd64)

package telemetry

const haveSerializedTSC = true

// serializedTSC executes CPUID followed by RDTSC.
//
//go:noescape
func serializedTSC() uint64
