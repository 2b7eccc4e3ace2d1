package resource

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxConcurrentProbes is the maximum number of instruction-probe helper
	// processes alive at once. If 0, defaults to GOMAXPROCS.
	MaxConcurrentProbes int64

	// SampleInterval is the minimum spacing between telemetry samples.
	// If 0, sampling is unthrottled.
	SampleInterval time.Duration

	// SampleBurst is the number of samples that may be taken back to back.
	// If 0, defaults to 1.
	SampleBurst int
}

// Controller bounds helper-process concurrency and throttles periodic sampling.
type Controller struct {
	cfg Config

	// Concurrency
	probeSem *semaphore.Weighted
	inFlight atomic.Int64

	// Sampling
	sampler *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentProbes <= 0 {
		cfg.MaxConcurrentProbes = int64(runtime.GOMAXPROCS(0))
	}
	if cfg.SampleBurst <= 0 {
		cfg.SampleBurst = 1
	}

	c := &Controller{
		cfg:      cfg,
		probeSem: semaphore.NewWeighted(cfg.MaxConcurrentProbes),
	}

	if cfg.SampleInterval > 0 {
		c.sampler = rate.NewLimiter(rate.Every(cfg.SampleInterval), cfg.SampleBurst)
	}

	return c
}

// AcquireProbe reserves a probe slot.
// Blocks if all slots are busy.
func (c *Controller) AcquireProbe(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if err := c.probeSem.Acquire(ctx, 1); err != nil {
		return err
	}
	c.inFlight.Add(1)
	return nil
}

// TryAcquireProbe attempts to reserve a probe slot without blocking.
func (c *Controller) TryAcquireProbe() bool {
	if c == nil {
		return true
	}
	if !c.probeSem.TryAcquire(1) {
		return false
	}
	c.inFlight.Add(1)
	return true
}

// ReleaseProbe releases a probe slot.
func (c *Controller) ReleaseProbe() {
	if c == nil {
		return
	}
	c.inFlight.Add(-1)
	c.probeSem.Release(1)
}

// ProbesInFlight returns the number of probe slots currently held.
func (c *Controller) ProbesInFlight() int64 {
	if c == nil {
		return 0
	}
	return c.inFlight.Load()
}

// MaxConcurrentProbes returns the configured probe concurrency.
func (c *Controller) MaxConcurrentProbes() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MaxConcurrentProbes
}

// WaitSample blocks until the sampling limit allows another sample.
func (c *Controller) WaitSample(ctx context.Context) error {
	if c == nil || c.sampler == nil {
		return ctx.Err()
	}
	return c.sampler.Wait(ctx)
}

// TryAcquireSample reports whether a sample may be taken now.
func (c *Controller) TryAcquireSample() bool {
	if c == nil || c.sampler == nil {
		return true
	}
	return c.sampler.AllowN(time.Now(), 1)
}

// SampleInterval returns the configured sample spacing (0 if unthrottled).
func (c *Controller) SampleInterval() time.Duration {
	if c == nil {
		return 0
	}
	return c.cfg.SampleInterval
}
