//go:build !linux

package telemetry

import "time"

// epoch anchors the runtime monotonic clock; time.Since never goes backwards.
var epoch = time.Now()

func monotonicTicks() (uint64, error) {
	return uint64(time.Since(epoch).Nanoseconds()), nil
}
