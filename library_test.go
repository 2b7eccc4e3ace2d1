package cpudispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cpudispatch/dispatch"
	"github.com/hupe1980/cpudispatch/feature"
	"github.com/hupe1980/cpudispatch/internal/fs"
	"github.com/hupe1980/cpudispatch/status"
)

func initQuiet(t *testing.T, opts ...Option) {
	t.Helper()
	base := []Option{withFileSystem(fs.NewMemFS()), WithInstructionProbing(false)}
	require.NoError(t, Init(append(base, opts...)...))
}

func TestReleaseWithoutInit(t *testing.T) {
	err := Release()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, status.InvalidState, StatusOf(err))
}

func TestAccessorsBeforeInit(t *testing.T) {
	require.Nil(t, Current())

	assert.Equal(t, feature.Set{}, Features())
	assert.Zero(t, IsaFeatures())
	assert.Zero(t, SimdFeatures())
	assert.Zero(t, SystemFeatures())
	assert.Equal(t, feature.ArchUnknown, Architecture())
	assert.Equal(t, feature.VendorUnknown, Vendor())
	assert.Equal(t, feature.UarchUnknown, Microarchitecture())
	assert.Zero(t, LogicalCoreCount())
	assert.Zero(t, CacheSize(1, DataCache))
	assert.Zero(t, DataCacheSize(1))
	assert.Zero(t, InstructionCacheSize(1))
	assert.Empty(t, BriefName())
	assert.Empty(t, FullName())
}

func TestInitIsReferenceCounted(t *testing.T) {
	initQuiet(t)
	first := Current()
	require.NotNil(t, first)

	// Nested calls keep the first detection.
	initQuiet(t, WithFeatureMask(^feature.ISA(0), 0, 0))
	assert.Same(t, first, Current())
	assert.Equal(t, first.IsaFeatures(), IsaFeatures())

	require.NoError(t, Release())
	assert.Same(t, first, Current())
	assert.Equal(t, first.LogicalCoreCount(), LogicalCoreCount())

	require.NoError(t, Release())
	assert.Nil(t, Current())
	assert.ErrorIs(t, Release(), ErrInvalidState)

	// A fresh Init detects again.
	initQuiet(t)
	t.Cleanup(func() { _ = Release() })
	assert.NotSame(t, first, Current())
}

func TestNewCellUsesProcessDefault(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	initQuiet(t, WithMetrics(metrics))
	t.Cleanup(func() { _ = Release() })

	table := dispatch.Table[func() string]{
		{Name: "unreachable", Fn: func() string { return "unreachable" }, Requirement: dispatch.Requirement{Microarchitecture: feature.UarchXBurst2, ISA: 1}},
		{Name: "generic", Fn: func() string { return "generic" }},
	}
	cell := NewCell("greet", table)
	assert.False(t, cell.Resolved())
	assert.Equal(t, "generic", cell.Get()())
	assert.True(t, cell.Resolved())

	assert.Equal(t, int64(1), metrics.GetStats().ResolveCount)
	assert.Equal(t, int64(1), metrics.GetStats().ResolveWins)
}

func TestVersion(t *testing.T) {
	v := Version()
	assert.Equal(t, "0.3.0 (go)", v.String())
}
