//go:build linux

package telemetry

import (
	"golang.org/x/sys/unix"

	"github.com/hupe1980/cpudispatch/status"
)

func monotonicTicks() (uint64, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 0, status.Wrap("telemetry.TimerTicks", status.SystemError, err)
	}
	return uint64(ts.Nano()), nil
}
