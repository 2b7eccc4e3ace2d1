// Package resource implements the Controller for process-wide limits.
//
// The Controller manages two resource types:
//
//   - Concurrency: Limit instruction-probe helper processes alive at once
//   - Sampling: Rate-limit periodic telemetry reads (energy counters update
//     roughly once per millisecond; sampling faster reads the same value)
//
// # Architecture
//
//	┌───────────────────────────────────────────────┐
//	│                  Controller                   │
//	├───────────────────────┬───────────────────────┤
//	│  Probe slots (sem)    │  Sample limiter       │
//	│                       │  (token bucket)       │
//	├───────────────────────┼───────────────────────┤
//	│  AcquireProbe         │  WaitSample           │
//	│  TryAcquireProbe      │  TryAcquireSample     │
//	│  ReleaseProbe         │                       │
//	└───────────────────────┴───────────────────────┘
//
// # Probe Limits
//
//	rc := resource.NewController(resource.Config{
//	    MaxConcurrentProbes: 4,
//	})
//
//	if err := rc.AcquireProbe(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseProbe()
//
// # Sampling
//
//	rc := resource.NewController(resource.Config{
//	    SampleInterval: 10 * time.Millisecond,
//	})
//
//	for {
//	    if err := rc.WaitSample(ctx); err != nil {
//	        return err // context cancelled
//	    }
//	    // read counter
//	}
//
// # Thread Safety
//
// All Controller methods are safe for concurrent use.
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
