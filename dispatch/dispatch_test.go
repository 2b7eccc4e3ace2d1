package dispatch

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cpudispatch/feature"
)

type kernel func() string

func named(s string) kernel { return func() string { return s } }

func TestRequirementSatisfied(t *testing.T) {
	set := feature.Set{
		Microarchitecture: feature.UarchHaswell,
		ISA:               feature.X86CMOV | feature.X86Popcnt,
		SIMD:              feature.X86SSE2 | feature.X86AVX2,
		System:            feature.X86SysYMM,
	}

	tests := []struct {
		name string
		req  Requirement
		want bool
	}{
		{"fallback", Requirement{}, true},
		{"subset", Requirement{SIMD: feature.X86AVX2, System: feature.X86SysYMM}, true},
		{"missing simd", Requirement{SIMD: feature.X86AVX512F}, false},
		{"missing isa", Requirement{ISA: feature.X86BMI2}, false},
		{"missing system", Requirement{System: feature.X86SysZMM}, false},
		{"matching uarch", Requirement{Microarchitecture: feature.UarchHaswell}, true},
		{"other uarch", Requirement{Microarchitecture: feature.UarchIvyBridge}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.Satisfied(set))
		})
	}
}

func TestResolveSkipsOtherMicroarchitecture(t *testing.T) {
	const bit5 = feature.SIMD(1 << 5)
	table := Table[kernel]{
		{Name: "tuned", Fn: named("tuned"), Requirement: Requirement{SIMD: bit5, Microarchitecture: feature.UarchHaswell}},
		{Name: "simd", Fn: named("simd"), Requirement: Requirement{SIMD: bit5}},
		{Name: "generic", Fn: named("generic")},
	}
	set := feature.Set{SIMD: bit5, Microarchitecture: feature.UarchSandyBridge}

	e := Resolve(table, set)
	assert.Equal(t, "simd", e.Name)
	assert.Equal(t, "simd", e.Fn())
}

func TestResolveTerminatesOnFallback(t *testing.T) {
	table := Table[kernel]{
		{Name: "avx512", Fn: named("avx512"), Requirement: Requirement{SIMD: feature.X86AVX512F}},
		{Name: "avx2", Fn: named("avx2"), Requirement: Requirement{SIMD: feature.X86AVX2}},
		{Name: "generic", Fn: named("generic")},
	}

	assert.Equal(t, "generic", Resolve(table, feature.Set{}).Name)
	assert.Equal(t, "avx2", Resolve(table, feature.Set{SIMD: feature.X86AVX2}).Name)
	assert.Equal(t, "avx512", Resolve(table, feature.Set{SIMD: feature.X86AVX2 | feature.X86AVX512F}).Name)
}

func TestResolvePanicsWithoutFallback(t *testing.T) {
	table := Table[kernel]{
		{Name: "sse2", Fn: named("sse2"), Requirement: Requirement{SIMD: feature.X86SSE2}},
	}

	// Panics even though the only entry qualifies.
	assert.PanicsWithValue(t,
		"dispatch: table has no fallback entry (zero Requirement) among 1 entries",
		func() { Resolve(table, feature.Set{SIMD: feature.X86SSE2}) })

	assert.Panics(t, func() { Resolve(Table[kernel]{}, feature.Set{}) })

	// A wildcard microarchitecture alone is not enough when features are required.
	assert.Panics(t, func() { NewCell(table, StaticSource(feature.Set{}), WithName("add")) })
}

func TestPreferMicroarchitecture(t *testing.T) {
	prev := preferenceList
	t.Cleanup(func() { preferenceList = prev })
	preferenceList = func(m feature.Microarchitecture) []feature.Microarchitecture {
		return preferencesFor("amd64", m)
	}

	table := Table[kernel]{
		{Name: "sandybridge", Fn: named("sandybridge"), Requirement: Requirement{SIMD: feature.X86AVX, Microarchitecture: feature.UarchSandyBridge}},
		{Name: "ivybridge", Fn: named("ivybridge"), Requirement: Requirement{SIMD: feature.X86AVX, Microarchitecture: feature.UarchIvyBridge}},
		{Name: "k10", Fn: named("k10"), Requirement: Requirement{SIMD: feature.X86SSE3, Microarchitecture: feature.UarchK10}},
		{Name: "avx", Fn: named("avx"), Requirement: Requirement{SIMD: feature.X86AVX}},
		{Name: "generic", Fn: named("generic")},
		{Name: "after-fallback", Fn: named("after"), Requirement: Requirement{Microarchitecture: feature.UarchHaswell}},
	}

	haswell := feature.Set{Microarchitecture: feature.UarchHaswell, SIMD: feature.X86SSE3 | feature.X86AVX}
	// Haswell prefers IvyBridge over SandyBridge.
	assert.Equal(t, "ivybridge", ResolveWith(table, haswell, PreferMicroarchitecture).Name)
	// First qualifying ignores tunings for other cores.
	assert.Equal(t, "avx", Resolve(table, haswell).Name)

	// Bulldozer's list reaches K10 only after the Intel cores.
	bulldozer := feature.Set{Microarchitecture: feature.UarchBulldozer, SIMD: feature.X86SSE3}
	assert.Equal(t, "k10", ResolveWith(table, bulldozer, PreferMicroarchitecture).Name)

	jaguar := feature.Set{Microarchitecture: feature.UarchJaguar, SIMD: feature.X86SSE3 | feature.X86AVX}
	assert.Equal(t, "avx", ResolveWith(table, jaguar, PreferMicroarchitecture).Name)

	assert.Equal(t, "generic", ResolveWith(table, feature.Set{}, PreferMicroarchitecture).Name)
}

func TestPreferencesEndWithWildcard(t *testing.T) {
	for _, goarch := range []string{"386", "amd64", "arm", "arm64", "mips", "riscv64"} {
		for _, m := range []feature.Microarchitecture{feature.UarchHaswell, feature.UarchCortexA9, feature.UarchNeoverseN1, feature.UarchUnknown} {
			list := preferencesFor(goarch, m)
			require.NotEmpty(t, list)
			assert.Equal(t, feature.AnyMicroarchitecture, list[len(list)-1], "%s/%s", goarch, m)
		}
	}

	assert.Equal(t, []feature.Microarchitecture{
		feature.UarchHaswell, feature.UarchIvyBridge, feature.UarchSandyBridge, feature.UarchPiledriver,
		feature.UarchBulldozer, feature.UarchNehalem, feature.UarchPenryn, feature.UarchConroe, feature.UarchUnknown,
	}, preferencesFor("amd64", feature.UarchHaswell))

	assert.Equal(t, []feature.Microarchitecture{
		feature.UarchHaswell, feature.UarchIvyBridge, feature.UarchSandyBridge, feature.UarchNehalem,
		feature.UarchPenryn, feature.UarchConroe, feature.UarchUnknown,
	}, preferencesFor("386", feature.UarchHaswell))
}

type countingRecorder struct {
	resolves atomic.Int64
	wins     atomic.Int64
	entries  sync.Map
}

func (r *countingRecorder) RecordResolve(op, entry string, won bool) {
	r.resolves.Add(1)
	if won {
		r.wins.Add(1)
	}
	r.entries.Store(entry, op)
}

func TestCellResolvesOnce(t *testing.T) {
	var calls atomic.Int64
	source := SourceFunc(func() feature.Set {
		calls.Add(1)
		return feature.Set{SIMD: feature.X86AVX2}
	})
	table := Table[kernel]{
		{Name: "avx2", Fn: named("avx2"), Requirement: Requirement{SIMD: feature.X86AVX2}},
		{Name: "generic", Fn: named("generic")},
	}
	rec := &countingRecorder{}
	cell := NewCell(table, source, WithName("sum"), WithRecorder(rec))

	assert.False(t, cell.Resolved())
	assert.Zero(t, calls.Load())

	assert.Equal(t, "avx2", cell.Get()())
	assert.True(t, cell.Resolved())
	assert.Equal(t, "avx2", cell.Entry().Name)
	assert.Equal(t, "avx2", cell.Get()())

	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, int64(1), rec.resolves.Load())
	assert.Equal(t, int64(1), rec.wins.Load())
	op, ok := rec.entries.Load("avx2")
	require.True(t, ok)
	assert.Equal(t, "sum", op)
}

func TestCellCopiesTable(t *testing.T) {
	table := Table[kernel]{
		{Name: "generic", Fn: named("generic")},
	}
	cell := NewCell(table, nil)
	table[0].Name = "mutated"

	assert.Equal(t, "generic", cell.Entry().Name)
}

func TestCellRaceHasSingleWinner(t *testing.T) {
	const goroutines = 32

	for round := range 20 {
		start := make(chan struct{})
		source := SourceFunc(func() feature.Set {
			<-start
			return feature.Set{SIMD: feature.X86SSE2}
		})
		table := Table[kernel]{
			{Name: "sse2", Fn: named("sse2"), Requirement: Requirement{SIMD: feature.X86SSE2}},
			{Name: "generic", Fn: named("generic")},
		}
		rec := &countingRecorder{}
		cell := NewCell(table, source, WithRecorder(rec))

		var (
			wg      sync.WaitGroup
			results [goroutines]string
		)
		for i := range goroutines {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i] = cell.Get()()
			}()
		}
		close(start)
		wg.Wait()

		for _, r := range results {
			assert.Equal(t, "sse2", r, "round %d", round)
		}
		assert.Equal(t, int64(1), rec.wins.Load(), "round %d", round)
		assert.GreaterOrEqual(t, rec.resolves.Load(), int64(1))
		assert.LessOrEqual(t, rec.resolves.Load(), int64(goroutines))
	}
}

func TestPolicyString(t *testing.T) {
	assert.Equal(t, "first-qualifying", FirstQualifying.String())
	assert.Equal(t, "prefer-microarchitecture", PreferMicroarchitecture.String())
	assert.Equal(t, "Policy(7)", Policy(7).String())
}
