package cpumodel

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/cpudispatch/feature"
	"github.com/hupe1980/cpudispatch/internal/probe"
)

var arm32Tokens = []string{
	"thumb", "fpa", "vfp", "edsp", "java", "iwmmxt", "thumbee", "neon",
	"vfpv3", "vfpv4", "idiva", "crc32", "aes", "pmull", "sha1", "sha2",
}

// assertNamed fails for every set bit that has no identifier.
func assertNamed(t *testing.T, label string, s feature.Set) {
	t.Helper()
	masks := []struct {
		kind feature.Kind
		bits uint64
	}{
		{feature.KindISA, uint64(s.ISA)},
		{feature.KindSIMD, uint64(s.SIMD)},
		{feature.KindSystem, uint64(s.System)},
	}
	for _, m := range masks {
		for _, b := range feature.Bits(m.bits) {
			assert.NotEmpty(t, feature.ID(s.Architecture, m.kind, b), "%s: %s bit %d", label, m.kind, b)
		}
	}
}

func TestEveryDecodedBitIsNamed(t *testing.T) {
	full := []struct {
		label string
		facts *probe.Facts
	}{
		{"amd64", &probe.Facts{
			GOARCH: "amd64", Cores: 1, PerfCycleCounter: true,
			X86: &probe.X86Facts{
				VendorString: "GenuineIntel", Family: 6, Model: 0x3C,
				Features: slices.Collect(maps.Keys(x86Features)),
				XCR0:     0xFF,
			},
		}},
		{"386", &probe.Facts{
			GOARCH: "386", Cores: 1,
			X86:    &probe.X86Facts{Family: 5, Features: slices.Collect(maps.Keys(x86Features)), XCR0: 0xFF},
		}},
		{"arm64", &probe.Facts{
			GOARCH: "arm64", Cores: 1, PerfCycleCounter: true,
			ARM: &probe.ARMFacts{
				Implementer: 0x41, Part: 0xD0C, Architecture: 8, AArch64: true,
				Features: append(slices.Collect(maps.Keys(arm64Tokens)), "fp"),
			},
		}},
		{"arm", &probe.Facts{
			GOARCH: "arm", Cores: 1, PerfCycleCounter: true,
			ARM:    &probe.ARMFacts{Implementer: 'i', Part: 0x411, Architecture: 7, ArchSuffix: "TEJ", Features: arm32Tokens},
		}},
		{"mipsle", &probe.Facts{
			GOARCH: "mipsle", Cores: 1, PerfCycleCounter: true,
			MIPS: &probe.MIPSFacts{
				SystemType: "JZ4780",
				CPUModel:   "Ingenic JZRISC V4.15  FPU V0.1",
				ISA:        slices.Collect(maps.Keys(mipsISATokens)),
				ASEs:       []string{"mips16", "micromips", "smartmips", "mt", "vz", "mdmx", "mips3d", "dsp", "dsp2", "mxu"},
			},
		}},
	}
	for _, tt := range full {
		m := Build(tt.facts)
		assert.NotZero(t, m.Set.ISA, tt.label)
		assertNamed(t, tt.label, m.Set)
	}
}

func TestX86SystemStateIsOSGated(t *testing.T) {
	build := func(features []string, xcr0 uint64) feature.System {
		return Build(&probe.Facts{GOARCH: "386", X86: &probe.X86Facts{
			Family: 6, Features: features, XCR0: xcr0,
		}}).Set.System
	}

	// The detector omits AVX and AVX512F when the OS does not save YMM/ZMM.
	sys := build([]string{"X87", "SSE", "SSE2", "MPX"}, 0)
	assert.True(t, sys.Has(feature.X86SysXMM))
	assert.False(t, sys.Has(feature.X86SysYMM))
	assert.False(t, sys.Has(feature.X86SysZMM))
	assert.False(t, sys.Has(feature.X86SysBND))

	sys = build([]string{"SSE", "AVX", "AVX512F"}, 0xE7)
	assert.True(t, sys.Has(feature.X86SysXMM|feature.X86SysYMM|feature.X86SysZMM))
	assert.False(t, sys.Has(feature.X86SysBND))

	// MPX alone is an instruction set bit; the registers need XCR0 bits 3 and 4.
	m := Build(&probe.Facts{GOARCH: "386", X86: &probe.X86Facts{Family: 6, Features: []string{"MPX"}, XCR0: 1 << 3}})
	assert.True(t, m.Set.ISA.Has(feature.X86MPX))
	assert.False(t, m.Set.System.Has(feature.X86SysBND))

	assert.True(t, build([]string{"MPX"}, 0x1B).Has(feature.X86SysBND))
	assert.False(t, build(nil, 0x1B).Has(feature.X86SysBND))
}

func TestSingleThreadedNeedsOSCount(t *testing.T) {
	m := Build(&probe.Facts{GOARCH: "amd64", X86: &probe.X86Facts{LogicalCores: 1}})
	assert.Equal(t, 1, m.Cores)
	assert.False(t, m.Set.System.Has(feature.SingleThreaded))

	m = Build(&probe.Facts{GOARCH: "amd64", Cores: 1, X86: &probe.X86Facts{LogicalCores: 8}})
	assert.True(t, m.Set.System.Has(feature.SingleThreaded))
}
