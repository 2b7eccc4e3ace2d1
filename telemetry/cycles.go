package telemetry

import (
	"sync/atomic"

	"github.com/hupe1980/cpudispatch/status"
)

// CycleCounter holds the state of a running cycle measurement. The zero value
// is not running. A CycleCounter is owned by the goroutine that acquired it;
// copies share one measurement, which can be released once.
type CycleCounter struct {
	state uint64
	// tag identifies the source that produced state.
	tag uint32
	// rdtscp selects the serializing read on release.
	rdtscp bool
	live   *atomic.Bool
}

func startedCounter(c CycleCounter) CycleCounter {
	c.live = new(atomic.Bool)
	c.live.Store(true)
	return c
}

// Running reports whether c holds an acquired measurement.
func (c *CycleCounter) Running() bool {
	return c != nil && c.live != nil && c.live.Load()
}

// ReleaseCycleCounter stops the measurement and returns the elapsed cycles.
// c is reset to the zero value, also on failure. Releasing a counter that is
// not running, or a copy of one already released, fails with InvalidState.
func ReleaseCycleCounter(c *CycleCounter) (uint64, error) {
	const op = "telemetry.ReleaseCycleCounter"
	if c == nil {
		return 0, status.New(op, status.NullArgument)
	}
	state := *c
	*c = CycleCounter{}
	if state.live == nil || !state.live.CompareAndSwap(true, false) {
		return 0, status.New(op, status.InvalidState)
	}
	return releaseCycles(state)
}
