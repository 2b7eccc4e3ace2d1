//go:build linux && (386 || amd64)

package telemetry

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/hupe1980/cpudispatch/feature"
	"github.com/hupe1980/cpudispatch/internal/fs"
)

var defaultMSRDriver = &msrDriver{
	fs:         fs.Default,
	currentCPU: getcpu,
	ticks:      monotonicTicks,
}

func getcpu() (int, error) {
	var cpu uint32
	if _, _, errno := unix.RawSyscall(unix.SYS_GETCPU, uintptr(unsafe.Pointer(&cpu)), 0, 0); errno != 0 {
		return 0, errno
	}
	return int(cpu), nil
}

func acquireEnergy(set feature.Set, kind EnergyKind) (EnergyCounter, error) {
	return defaultMSRDriver.acquire(set, kind)
}
