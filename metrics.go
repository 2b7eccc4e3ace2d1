package cpudispatch

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    resolveCounter *prometheus.CounterVec
//	}
//
//	func (p *PrometheusCollector) RecordResolve(op, entry string, won bool) {
//	    p.resolveCounter.WithLabelValues(op, entry).Inc()
//	}
type MetricsCollector interface {
	// RecordDetect is called after each capability detection.
	// duration is the total time taken, err is nil if successful.
	RecordDetect(duration time.Duration, err error)

	// RecordProbe is called after each executed instruction probe.
	// result is one of "supported", "unsupported" or "unavailable".
	RecordProbe(instruction, result string)

	// RecordResolve is called every time a dispatch cell resolves its table.
	// won reports whether this resolution was the one published.
	RecordResolve(op, entry string, won bool)

	// RecordEnergySample is called for each power monitor sample.
	RecordEnergySample(kind string, value float64, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordDetect(time.Duration, error)         {}
func (NoopMetricsCollector) RecordProbe(string, string)                {}
func (NoopMetricsCollector) RecordResolve(string, string, bool)        {}
func (NoopMetricsCollector) RecordEnergySample(string, float64, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	DetectCount      atomic.Int64
	DetectErrors     atomic.Int64
	DetectTotalNanos atomic.Int64
	ProbeCount       atomic.Int64
	ProbeSupported   atomic.Int64
	ProbeUnsupported atomic.Int64
	ResolveCount     atomic.Int64
	ResolveWins      atomic.Int64
	EnergySamples    atomic.Int64
	EnergyErrors     atomic.Int64
}

func (b *BasicMetricsCollector) RecordDetect(duration time.Duration, err error) {
	b.DetectCount.Add(1)
	b.DetectTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.DetectErrors.Add(1)
	}
}

func (b *BasicMetricsCollector) RecordProbe(_, result string) {
	b.ProbeCount.Add(1)
	switch result {
	case "supported":
		b.ProbeSupported.Add(1)
	case "unsupported":
		b.ProbeUnsupported.Add(1)
	}
}

func (b *BasicMetricsCollector) RecordResolve(_, _ string, won bool) {
	b.ResolveCount.Add(1)
	if won {
		b.ResolveWins.Add(1)
	}
}

func (b *BasicMetricsCollector) RecordEnergySample(_ string, _ float64, err error) {
	b.EnergySamples.Add(1)
	if err != nil {
		b.EnergyErrors.Add(1)
	}
}

// BasicMetricsStats is a point-in-time copy of BasicMetricsCollector.
type BasicMetricsStats struct {
	DetectCount      int64
	DetectErrors     int64
	DetectAvgNanos   int64
	ProbeCount       int64
	ProbeSupported   int64
	ProbeUnsupported int64
	ResolveCount     int64
	ResolveWins      int64
	EnergySamples    int64
	EnergyErrors     int64
}

// GetStats returns the current metrics snapshot.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	detects := b.DetectCount.Load()
	return BasicMetricsStats{
		DetectCount:      detects,
		DetectErrors:     b.DetectErrors.Load(),
		DetectAvgNanos:   avgNanos(b.DetectTotalNanos.Load(), detects),
		ProbeCount:       b.ProbeCount.Load(),
		ProbeSupported:   b.ProbeSupported.Load(),
		ProbeUnsupported: b.ProbeUnsupported.Load(),
		ResolveCount:     b.ResolveCount.Load(),
		ResolveWins:      b.ResolveWins.Load(),
		EnergySamples:    b.EnergySamples.Load(),
		EnergyErrors:     b.EnergyErrors.Load(),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}
