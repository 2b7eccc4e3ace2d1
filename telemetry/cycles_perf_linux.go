//go:build linux && !386 && !amd64

package telemetry

import (
	"encoding/binary"

	"golang.org/x/sys/unix"

	"github.com/hupe1980/cpudispatch/feature"
	"github.com/hupe1980/cpudispatch/internal/probe"
	"github.com/hupe1980/cpudispatch/status"
)

const perfCounterMagic = 0xCAB06128

// AcquireCycleCounter opens and starts a perf-events CPU-cycle counter. It
// fails with UnsupportedSoftware when set does not report a 64-bit cycle
// counter.
func AcquireCycleCounter(set feature.Set) (CycleCounter, error) {
	const op = "telemetry.AcquireCycleCounter"
	if !set.System.Has(feature.CycleCounter | feature.CycleCounter64Bit) {
		return CycleCounter{}, status.New(op, status.UnsupportedSoftware)
	}

	fd, err := probe.OpenCycleCounter()
	if err != nil {
		return CycleCounter{}, status.Wrap(op, status.SystemError, err)
	}
	if err := unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_RESET, 0); err != nil {
		_ = unix.Close(fd)
		return CycleCounter{}, status.Wrap(op, status.SystemError, err)
	}
	if err := unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_ENABLE, 0); err != nil {
		_ = unix.Close(fd)
		return CycleCounter{}, status.Wrap(op, status.SystemError, err)
	}
	return startedCounter(CycleCounter{state: perfCounterMagic<<32 | uint64(uint32(fd))}), nil
}

func releaseCycles(c CycleCounter) (uint64, error) {
	const op = "telemetry.ReleaseCycleCounter"
	if c.state>>32 != perfCounterMagic {
		return 0, status.New(op, status.InvalidState)
	}
	fd := int(uint32(c.state))
	defer unix.Close(fd)

	var buf [8]byte
	n, err := unix.Read(fd, buf[:])
	if err != nil {
		return 0, status.Wrap(op, status.SystemError, err)
	}
	if n != len(buf) {
		return 0, status.New(op, status.SystemError)
	}
	return binary.NativeEndian.Uint64(buf[:]), nil
}
