//go:build 386 || amd64

package telemetry

import (
	"github.com/klauspost/cpuid/v2"

	"github.com/hupe1980/cpudispatch/feature"
	"github.com/hupe1980/cpudispatch/status"
)

const tscCounterMagic = 0x75C0FFEE

// AcquireCycleCounter starts a time-stamp counter measurement. It fails with
// UnsupportedHardware when set lacks a cycle counter, or when the build has
// no serialized RDTSC and set lacks RDTSCP.
func AcquireCycleCounter(set feature.Set) (CycleCounter, error) {
	const op = "telemetry.AcquireCycleCounter"
	if !set.System.Has(feature.CycleCounter) {
		return CycleCounter{}, status.New(op, status.UnsupportedHardware)
	}
	rdtscp := set.ISA.Has(feature.X86Rdtscp)
	if !haveSerializedTSC && !rdtscp {
		return CycleCounter{}, status.New(op, status.UnsupportedHardware)
	}
	ts := serializedTSC()
	if ts == 0 {
		return CycleCounter{}, status.New(op, status.UnsupportedHardware)
	}
	return startedCounter(CycleCounter{state: ts, tag: tscCounterMagic, rdtscp: rdtscp}), nil
}

func releaseCycles(c CycleCounter) (uint64, error) {
	const op = "telemetry.ReleaseCycleCounter"
	if c.tag != tscCounterMagic || c.state == 0 {
		return 0, status.New(op, status.InvalidState)
	}
	var end uint64
	if c.rdtscp {
		end = cpuid.CPU.RTCounter()
	}
	if end == 0 && haveSerializedTSC {
		end = serializedTSC()
	}
	if end == 0 {
		return 0, status.New(op, status.UnsupportedHardware)
	}
	return end - c.state, nil
}
