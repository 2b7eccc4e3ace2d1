package cpudispatch

import (
	"time"

	"github.com/hupe1980/cpudispatch/feature"
	"github.com/hupe1980/cpudispatch/internal/fs"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	fsys             fs.FileSystem
	probing          bool
	probeConcurrency int64
	probeTimeout     time.Duration
	maskISA          feature.ISA
	maskSIMD         feature.SIMD
	maskSystem       feature.System
	disabled         []string
}

// Option configures Detect and Init.
type Option func(*options)

// WithLogger configures structured logging for detection and dispatch.
//
// If nil is passed, logging is disabled.
//
// Example:
//
//	logger := cpudispatch.NewJSONLogger(slog.LevelDebug)
//	caps, err := cpudispatch.Detect(ctx, cpudispatch.WithLogger(logger))
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetrics configures a metrics collector.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetrics(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// withFileSystem replaces the file system used to read /proc and /sys.
func withFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		o.fsys = fsys
	}
}

// WithInstructionProbing enables or disables execution-based feature probes.
// Probing is enabled by default where the platform supports it. Setting
// CPUDISPATCH_NO_PROBE=1 disables it regardless of this option.
func WithInstructionProbing(enabled bool) Option {
	return func(o *options) {
		o.probing = enabled
	}
}

// WithProbeConcurrency bounds the number of probe helper processes alive at
// once. Values <= 0 mean GOMAXPROCS.
func WithProbeConcurrency(n int64) Option {
	return func(o *options) {
		o.probeConcurrency = n
	}
}

// WithProbeTimeout bounds each probe helper process.
func WithProbeTimeout(d time.Duration) Option {
	return func(o *options) {
		o.probeTimeout = d
	}
}

// WithFeatureMask clears the given bits from the detected feature masks.
// Repeated calls accumulate.
//
// Example:
//
//	// Pretend AVX-512 is absent.
//	cpudispatch.Init(cpudispatch.WithFeatureMask(0, feature.X86AVX512F, feature.X86SysZMM))
func WithFeatureMask(isa feature.ISA, simd feature.SIMD, sys feature.System) Option {
	return func(o *options) {
		o.maskISA |= isa
		o.maskSIMD |= simd
		o.maskSystem |= sys
	}
}

// WithDisabledFeatures clears features by identifier, e.g. "AVX2" or "NEON".
// Identifiers unknown on the running architecture are logged and ignored.
func WithDisabledFeatures(ids ...string) Option {
	return func(o *options) {
		o.disabled = append(o.disabled, ids...)
	}
}

func applyOptions(opts []Option) options {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		probing:          true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
