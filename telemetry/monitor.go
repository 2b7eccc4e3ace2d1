package telemetry

import (
	"context"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/cpudispatch/feature"
	"github.com/hupe1980/cpudispatch/internal/resource"
	"github.com/hupe1980/cpudispatch/status"
)

const (
	// DefaultSampleInterval is the measurement window of a PowerMonitor.
	DefaultSampleInterval = time.Second
	// MinSampleInterval is the RAPL update granularity; shorter windows are
	// rounded up.
	MinSampleInterval = time.Millisecond
)

// Sample is one measurement window of a PowerMonitor.
type Sample struct {
	Kind EnergyKind
	// Value is in Joules for energy kinds and Watts for power kinds.
	Value float64
	// End is when the window closed.
	End      time.Time
	Interval time.Duration
	Err      error
}

// SampleRecorder receives every sample a PowerMonitor takes.
type SampleRecorder interface {
	RecordEnergySample(kind string, value float64, err error)
}

type monitorOptions struct {
	interval time.Duration
	spacing  time.Duration
	recorder SampleRecorder
	logger   *slog.Logger
	acquire  func(feature.Set, EnergyKind) (EnergyCounter, error)
	release  func(*EnergyCounter) (float64, error)
}

// MonitorOption configures a PowerMonitor.
type MonitorOption func(*monitorOptions)

// WithSampleInterval sets the measurement window.
func WithSampleInterval(d time.Duration) MonitorOption {
	return func(o *monitorOptions) { o.interval = d }
}

// WithSampleRecorder reports samples to r.
func WithSampleRecorder(r SampleRecorder) MonitorOption {
	return func(o *monitorOptions) { o.recorder = r }
}

// WithMonitorLogger logs samples at debug level.
func WithMonitorLogger(l *slog.Logger) MonitorOption {
	return func(o *monitorOptions) { o.logger = l }
}

// PowerMonitor measures energy kinds back to back in fixed windows. The kinds
// read the same package MSRs, so window starts across all kinds are spaced by
// at least MinSampleInterval.
type PowerMonitor struct {
	set      feature.Set
	kinds    []EnergyKind
	opts     monitorOptions
	throttle *resource.Controller
}

// NewPowerMonitor returns a monitor for kinds on the processor described by
// set.
func NewPowerMonitor(set feature.Set, kinds []EnergyKind, opts ...MonitorOption) *PowerMonitor {
	o := monitorOptions{
		interval: DefaultSampleInterval,
		spacing:  MinSampleInterval,
		acquire:  AcquireEnergyCounter,
		release:  ReleaseEnergyCounter,
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.interval = max(o.interval, MinSampleInterval)
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &PowerMonitor{
		set:      set,
		kinds:    append([]EnergyKind(nil), kinds...),
		opts:     o,
		throttle: resource.NewController(resource.Config{SampleInterval: o.spacing}),
	}
}

// Run samples every kind until ctx ends, sending each sample to out, and
// closes out before returning. A kind whose counter cannot be acquired is
// reported once as a failed sample and stops the monitor with that error.
// Ending ctx is not an error.
func (m *PowerMonitor) Run(ctx context.Context, out chan<- Sample) error {
	defer close(out)
	if len(m.kinds) == 0 {
		return status.New("telemetry.PowerMonitor.Run", status.InvalidArgument)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range m.kinds {
		g.Go(func() error { return m.sample(gctx, kind, out) })
	}
	return g.Wait()
}

func (m *PowerMonitor) sample(ctx context.Context, kind EnergyKind, out chan<- Sample) error {
	window := time.NewTimer(m.opts.interval)
	defer window.Stop()

	for {
		if err := m.throttle.WaitSample(ctx); err != nil {
			return nil
		}
		c, err := m.opts.acquire(m.set, kind)
		if err != nil {
			m.emit(ctx, out, Sample{Kind: kind, End: time.Now(), Err: err})
			return err
		}

		start := time.Now()
		window.Reset(m.opts.interval)
		select {
		case <-ctx.Done():
			_, _ = m.opts.release(&c)
			return nil
		case <-window.C:
		}

		value, err := m.opts.release(&c)
		end := time.Now()
		if !m.emit(ctx, out, Sample{Kind: kind, Value: value, End: end, Interval: end.Sub(start), Err: err}) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *PowerMonitor) emit(ctx context.Context, out chan<- Sample, s Sample) bool {
	if m.opts.recorder != nil {
		m.opts.recorder.RecordEnergySample(s.Kind.String(), s.Value, s.Err)
	}
	m.opts.logger.DebugContext(ctx, "energy sample",
		"kind", s.Kind.String(),
		"value", s.Value,
		"interval", s.Interval,
		"error", s.Err,
	)
	select {
	case out <- s:
		return true
	case <-ctx.Done():
		return false
	}
}
