//go:build !linux || !(386 || amd64)

package telemetry

import (
	"runtime"

	"github.com/hupe1980/cpudispatch/feature"
	"github.com/hupe1980/cpudispatch/internal/fs"
	"github.com/hupe1980/cpudispatch/status"
)

// Counters are never acquired here; the driver only serves tests.
var defaultMSRDriver = &msrDriver{
	fs:         fs.Default,
	currentCPU: func() (int, error) { return 0, nil },
	ticks:      monotonicTicks,
}

func acquireEnergy(feature.Set, EnergyKind) (EnergyCounter, error) {
	s := status.UnsupportedHardware
	if runtime.GOARCH == "386" || runtime.GOARCH == "amd64" {
		s = status.UnsupportedSoftware
	}
	return EnergyCounter{}, status.New("telemetry.AcquireEnergyCounter", s)
}
