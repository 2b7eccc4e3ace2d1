package telemetry

import (
	"github.com/hupe1980/cpudispatch/status"
)

const (
	// DefaultAccuracyIterations is the number of clock reads TimerAccuracy
	// uses to find the smallest tick step.
	DefaultAccuracyIterations = 128
	// MaxAccuracyIterations bounds the extra reads taken when the clock did
	// not advance during the default iterations.
	MaxAccuracyIterations = 1024

	nanosPerSecond = 1_000_000_000
)

// tickSource reads a monotonic clock in nanoseconds.
type tickSource func() (uint64, error)

// TimerTicks returns the current value of the monotonic system timer.
func TimerTicks() (uint64, error) { return monotonicTicks() }

// TimerFrequency returns the number of timer ticks per second.
func TimerFrequency() (uint64, error) { return nanosPerSecond, nil }

// TimerAccuracy estimates the smallest observable step of the system timer,
// in nanoseconds. It fails with UnsupportedHardware when the timer never
// advances.
func TimerAccuracy() (uint64, error) {
	return sampleAccuracy(monotonicTicks, DefaultAccuracyIterations, MaxAccuracyIterations)
}

// sampleAccuracy returns the smallest difference between consecutive distinct
// readings across iterations reads. When no reading differs from its
// predecessor it keeps reading, up to limit reads in total, and returns the
// first step it sees.
func sampleAccuracy(tick tickSource, iterations, limit int) (uint64, error) {
	const op = "telemetry.TimerAccuracy"

	start, err := tick()
	if err != nil {
		return 0, status.Wrap(op, status.SystemError, err)
	}

	best, seen := ^uint64(0), false
	for range iterations {
		end, err := tick()
		if err != nil {
			return 0, status.Wrap(op, status.SystemError, err)
		}
		if end != start {
			best, seen = min(best, end-start), true
			start = end
		}
	}
	if seen {
		return best, nil
	}

	for i := iterations; i < limit; i++ {
		end, err := tick()
		if err != nil {
			return 0, status.Wrap(op, status.SystemError, err)
		}
		if end != start {
			return end - start, nil
		}
	}
	return 0, status.New(op, status.UnsupportedHardware)
}
