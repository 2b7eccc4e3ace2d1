// Package telemetry reads the processor's timing and energy facilities.
//
// # Timer
//
// TimerTicks, TimerFrequency and TimerAccuracy expose the system monotonic
// clock. On Linux ticks come from clock_gettime(CLOCK_MONOTONIC); elsewhere
// from the Go runtime's monotonic clock. Both tick in nanoseconds.
//
// # Cycle counters
//
// AcquireCycleCounter starts a measurement and ReleaseCycleCounter ends it,
// returning the number of elapsed cycles. x86 uses the time-stamp counter;
// other Linux systems use a perf-events hardware counter.
//
//	c, err := telemetry.AcquireCycleCounter(cpudispatch.Features())
//	if err != nil { ... }
//	work()
//	cycles, err := telemetry.ReleaseCycleCounter(&c)
//
// # Energy counters
//
// Energy counters read Intel RAPL model-specific registers through the Linux
// msr driver (/dev/cpu/N/msr), which usually requires root. Energy kinds
// report Joules, power kinds report the average Watts over the measurement.
//
// PowerMonitor samples one or more kinds periodically and delivers the
// results on a channel.
package telemetry
