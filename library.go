package cpudispatch

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/cpudispatch/dispatch"
	"github.com/hupe1980/cpudispatch/feature"
	"github.com/hupe1980/cpudispatch/status"
)

var (
	refMu    sync.Mutex
	refCount int
	current  atomic.Pointer[Capabilities]
)

// Init detects the processor and installs the result as the process default.
// Calls nest: only the first detects, later calls increment a reference count
// and ignore their options. Every successful Init must be paired with Release.
func Init(opts ...Option) error {
	refMu.Lock()
	defer refMu.Unlock()

	if refCount > 0 {
		refCount++
		return nil
	}

	c, err := Detect(context.Background(), opts...)
	if err != nil {
		return err
	}
	current.Store(c)
	refCount = 1
	return nil
}

// Release drops one reference taken by Init. The last Release clears the
// process default. Release without a matching Init fails with InvalidState.
func Release() error {
	refMu.Lock()
	defer refMu.Unlock()

	if refCount == 0 {
		return status.New("cpudispatch.Release", status.InvalidState)
	}
	refCount--
	if refCount == 0 {
		current.Store(nil)
	}
	return nil
}

// Current returns the process default, or nil outside Init/Release.
func Current() *Capabilities { return current.Load() }

// Features returns the feature snapshot of the process default.
func Features() feature.Set { return Current().Features() }

// IsaFeatures returns the non-vector instruction extensions of the process default.
func IsaFeatures() feature.ISA { return Current().IsaFeatures() }

// SimdFeatures returns the vector instruction extensions of the process default.
func SimdFeatures() feature.SIMD { return Current().SimdFeatures() }

// SystemFeatures returns the system features of the process default.
func SystemFeatures() feature.System { return Current().SystemFeatures() }

func Architecture() feature.Architecture { return Current().Architecture() }

func Vendor() feature.Vendor { return Current().Vendor() }

func Microarchitecture() feature.Microarchitecture { return Current().Microarchitecture() }

func LogicalCoreCount() int { return Current().LogicalCoreCount() }

// CacheSize returns the size of a cache level of the process default, 0 when
// the level does not exist or Init has not been called.
func CacheSize(level int, kind CacheKind) uint32 { return Current().CacheSize(level, kind) }

func DataCacheSize(level int) uint32 { return Current().DataCacheSize(level) }

func InstructionCacheSize(level int) uint32 { return Current().InstructionCacheSize(level) }

func BriefName() string { return Current().BriefName() }

func FullName() string { return Current().FullName() }

// DefaultSource returns a dispatch.Source that reads the process default at
// resolution time. Cells resolved before Init only see the fallback entry.
func DefaultSource() dispatch.Source {
	return dispatch.SourceFunc(Features)
}

// DefaultRecorder returns a dispatch.Recorder that reports to the logger and
// metrics collector of the process default at resolution time.
func DefaultRecorder() dispatch.Recorder {
	return recorderFunc(func(op, entry string, won bool) {
		Current().RecordResolve(op, entry, won)
	})
}

type recorderFunc func(op, entry string, won bool)

func (f recorderFunc) RecordResolve(op, entry string, won bool) { f(op, entry, won) }

// NewCell returns a dispatch cell that resolves against the process default.
//
// Example:
//
//	var sum = cpudispatch.NewCell("sum", sumTable)
//
//	func Sum(x []float32) float32 { return sum.Get()(x) }
func NewCell[F any](name string, table dispatch.Table[F], opts ...dispatch.CellOption) *dispatch.Cell[F] {
	base := []dispatch.CellOption{dispatch.WithName(name), dispatch.WithRecorder(DefaultRecorder())}
	return dispatch.NewCell(table, DefaultSource(), append(base, opts...)...)
}
