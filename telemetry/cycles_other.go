//go:build !linux && !386 && !amd64

package telemetry

import (
	"github.com/hupe1980/cpudispatch/feature"
	"github.com/hupe1980/cpudispatch/status"
)

// AcquireCycleCounter always fails with UnsupportedSoftware: user-space cycle
// counters are only reachable through Linux perf events on this architecture.
func AcquireCycleCounter(feature.Set) (CycleCounter, error) {
	return CycleCounter{}, status.New("telemetry.AcquireCycleCounter", status.UnsupportedSoftware)
}

func releaseCycles(CycleCounter) (uint64, error) {
	return 0, status.New("telemetry.ReleaseCycleCounter", status.InvalidState)
}
