package cpudispatch

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hupe1980/cpudispatch/feature"
	"github.com/hupe1980/cpudispatch/internal/cpumodel"
	"github.com/hupe1980/cpudispatch/internal/probe"
	"github.com/hupe1980/cpudispatch/internal/resource"
	"github.com/hupe1980/cpudispatch/status"
)

const (
	// EnvDisable lists feature identifiers, separated by commas, that are
	// cleared after detection.
	EnvDisable = "CPUDISPATCH_DISABLE"
	// EnvNoProbe disables instruction probing when set to a true value.
	EnvNoProbe = "CPUDISPATCH_NO_PROBE"
)

// CacheKind selects the data or instruction side of a cache level.
type CacheKind uint8

const (
	DataCache CacheKind = iota
	InstructionCache
)

func (k CacheKind) String() string {
	switch k {
	case DataCache:
		return "data"
	case InstructionCache:
		return "instruction"
	default:
		return fmt.Sprintf("CacheKind(%d)", uint8(k))
	}
}

// Capabilities is an immutable description of the processor the process runs
// on. All methods are safe for concurrent use and tolerate a nil receiver,
// which reports zero values.
type Capabilities struct {
	model   cpumodel.Model
	logger  *Logger
	metrics MetricsCollector
}

// Detect probes the processor and returns a fresh Capabilities. It fails only
// when ctx ends before the platform probes finish.
func Detect(ctx context.Context, opts ...Option) (*Capabilities, error) {
	o := applyOptions(opts)
	if v, err := strconv.ParseBool(os.Getenv(EnvNoProbe)); err == nil && v {
		o.probing = false
	}
	if v := os.Getenv(EnvDisable); v != "" {
		o.disabled = append(o.disabled, strings.Split(v, ",")...)
	}

	start := time.Now()
	c, err := detect(ctx, &o)
	elapsed := time.Since(start)

	o.metricsCollector.RecordDetect(elapsed, err)
	o.logger.LogDetect(ctx, c, elapsed, err)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func detect(ctx context.Context, o *options) (*Capabilities, error) {
	popts := probe.Options{
		FS:     o.fsys,
		Logger: o.logger.Logger,
	}
	if o.probing {
		popts.Prober = probe.NewProber(probe.ProberOptions{
			Timeout:   o.probeTimeout,
			Resources: resource.NewController(resource.Config{MaxConcurrentProbes: o.probeConcurrency}),
			Logger:    o.logger.Logger,
			OnResult: func(name string, r probe.Result) {
				o.metricsCollector.RecordProbe(name, r.String())
				o.logger.LogProbe(ctx, name, r.String())
			},
		})
	}

	facts, err := probe.Collect(ctx, popts)
	if err != nil {
		return nil, status.Wrap("cpudispatch.Detect", status.SystemError, err)
	}

	m := cpumodel.Build(facts)
	m.Set = m.Set.Mask(o.maskISA, o.maskSIMD, o.maskSystem)
	for _, id := range o.disabled {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		isa, simd, sys, err := LookupFeature(m.Set.Architecture, id)
		if err != nil {
			o.logger.WarnContext(ctx, "ignoring feature override", "error", err)
			continue
		}
		m.Set = m.Set.Mask(isa, simd, sys)
	}

	return &Capabilities{
		model:   *m,
		logger:  o.logger,
		metrics: o.metricsCollector,
	}, nil
}

// Features returns the feature snapshot used for dispatch decisions.
// Capabilities therefore satisfies dispatch.Source.
func (c *Capabilities) Features() feature.Set {
	if c == nil {
		return feature.Set{}
	}
	return c.model.Set
}

// IsaFeatures returns the non-vector instruction extensions.
func (c *Capabilities) IsaFeatures() feature.ISA { return c.Features().ISA }

// SimdFeatures returns the vector instruction extensions.
func (c *Capabilities) SimdFeatures() feature.SIMD { return c.Features().SIMD }

// SystemFeatures returns processor and OS facilities.
func (c *Capabilities) SystemFeatures() feature.System { return c.Features().System }

// Architecture returns the processor architecture.
func (c *Capabilities) Architecture() feature.Architecture { return c.Features().Architecture }

// Vendor returns the processor designer.
func (c *Capabilities) Vendor() feature.Vendor { return c.Features().Vendor }

// Microarchitecture returns the core design, or UarchUnknown.
func (c *Capabilities) Microarchitecture() feature.Microarchitecture {
	return c.Features().Microarchitecture
}

// LogicalCoreCount returns the number of logical processors, 0 if unknown.
func (c *Capabilities) LogicalCoreCount() int {
	if c == nil {
		return 0
	}
	return c.model.Cores
}

// CacheSize returns the size in bytes of the given cache level (0..3). Levels
// that do not exist report 0. Levels 2 and 3 are unified, so both kinds
// report the same size.
func (c *Capabilities) CacheSize(level int, kind CacheKind) uint32 {
	if c == nil {
		return 0
	}
	switch kind {
	case DataCache:
		return c.model.Caches.Data(level).Size
	case InstructionCache:
		return c.model.Caches.Instruction(level).Size
	default:
		return 0
	}
}

// DataCacheSize is CacheSize(level, DataCache).
func (c *Capabilities) DataCacheSize(level int) uint32 { return c.CacheSize(level, DataCache) }

// InstructionCacheSize is CacheSize(level, InstructionCache).
func (c *Capabilities) InstructionCacheSize(level int) uint32 {
	return c.CacheSize(level, InstructionCache)
}

// BriefName returns a short processor name such as "Core i7-4770".
func (c *Capabilities) BriefName() string {
	if c == nil {
		return ""
	}
	return c.model.BriefName
}

// FullName returns the processor name with its vendor, such as
// "Intel Core i7-4770".
func (c *Capabilities) FullName() string {
	if c == nil {
		return ""
	}
	return c.model.FullName
}

func (c *Capabilities) String() string {
	if c == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s (%s, %s, %d cores)",
		c.FullName(), c.Architecture(), c.Microarchitecture(), c.LogicalCoreCount())
}

// RecordResolve forwards dispatch resolutions to the configured logger and
// metrics collector, so Capabilities can be passed to dispatch.WithRecorder.
func (c *Capabilities) RecordResolve(op, entry string, won bool) {
	if c == nil {
		return
	}
	c.metrics.RecordResolve(op, entry, won)
	c.logger.LogResolve(context.Background(), op, entry, won)
}

// RecordEnergySample forwards a power monitor sample to the configured
// metrics collector.
func (c *Capabilities) RecordEnergySample(kind string, value float64, err error) {
	if c == nil {
		return
	}
	c.metrics.RecordEnergySample(kind, value, err)
}
