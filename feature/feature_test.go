package feature

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMicroarchitectureEncoding(t *testing.T) {
	tests := []struct {
		uarch  Microarchitecture
		arch   Architecture
		vendor Vendor
	}{
		{UarchHaswell, ArchX86, VendorIntel},
		{UarchSteamroller, ArchX86, VendorAMD},
		{UarchCortexA15, ArchARM, VendorARM},
		{UarchXScale, ArchARM, VendorIntel},
		{UarchKrait, ArchARM, VendorQualcomm},
		{UarchSwift, ArchARM, VendorApple},
		{UarchItanium2, ArchIA64, VendorIntel},
		{UarchXBurst2, ArchMIPS, VendorIngenic},
	}

	for _, tt := range tests {
		t.Run(tt.uarch.ID(), func(t *testing.T) {
			assert.Equal(t, tt.arch, tt.uarch.Architecture())
			assert.Equal(t, tt.vendor, tt.uarch.Vendor())
		})
	}

	assert.Equal(t, Microarchitecture(0x0101000E), UarchHaswell)
	assert.Equal(t, Microarchitecture(0x01010101), UarchKnightsCorner)
	assert.Equal(t, UarchUnknown, AnyMicroarchitecture)
}

func TestMicroarchitectureNames(t *testing.T) {
	for m, n := range uarchNames {
		assert.NotContains(t, n.id, " ", "id of %#x", uint32(m))
		assert.NotEmpty(t, n.description)
		assert.True(t, m.Defined())
	}

	assert.Equal(t, "Sandy Bridge", UarchSandyBridge.Description())
	assert.Equal(t, "SandyBridge", UarchSandyBridge.ID())
	assert.Equal(t, "Cortex-A15", UarchCortexA15.Description())
	assert.Equal(t, "Itanium 2", UarchItanium2.Description())

	bogus := Microarchitecture(0x01019999)
	assert.False(t, bogus.Defined())
	assert.Empty(t, bogus.ID())
	assert.Equal(t, "Microarchitecture(0x1019999)", bogus.String())
}

func TestVendorAndArchitectureNames(t *testing.T) {
	assert.Equal(t, "DM&P", VendorDMP.Description())
	assert.Equal(t, "DMP", VendorDMP.ID())
	assert.Equal(t, "P.A.Semi", VendorPASemi.Description())
	assert.False(t, Vendor(13).Defined())
	assert.Empty(t, Vendor(13).ID())

	assert.Equal(t, "x86", ArchX86.ID())
	assert.Equal(t, "SPARC", ArchSPARC.Description())
	assert.False(t, Architecture(7).Defined())
	assert.Empty(t, Architecture(7).ID())

	assert.Equal(t, ArchX86, ArchitectureForGOARCH("amd64"))
	assert.Equal(t, ArchARM, ArchitectureForGOARCH("arm64"))
	assert.Equal(t, ArchUnknown, ArchitectureForGOARCH("wasm"))
}

func TestFeatureNames(t *testing.T) {
	tests := []struct {
		arch Architecture
		kind Kind
		bit  uint
		id   string
		desc string
	}{
		{ArchX86, KindISA, 0, "FPU", "x87 FPU"},
		{ArchX86, KindISA, 38, "MPX", "Memory Protection extension"},
		{ArchX86, KindSIMD, 15, "AVX2", "AVX 2 instruction set"},
		{ArchX86, KindSIMD, 11, "SSE4_1", "SSE 4.1 instruction set"},
		{ArchX86, KindSystem, 54, "YMM", "YMM registers"},
		{ArchX86, KindSystem, 0, "CycleCounter", "CPU cycle counter"},
		{ArchARM, KindISA, 18, "Div", "SDIV and UDIV instructions"},
		{ArchARM, KindSIMD, 3, "NEON", "NEON (Advanced SIMD) instruction set"},
		{ArchARM, KindSystem, 59, "D32", "32 VFP D registers"},
		{ArchARM, KindSystem, 5, "SingleThreaded", "Single hardware thread"},
		{ArchMIPS, KindSystem, 2, "AddressSpace64Bit", "64-bit address space"},
	}

	for _, tt := range tests {
		t.Run(tt.arch.ID()+"/"+tt.kind.String()+"/"+tt.id, func(t *testing.T) {
			assert.Equal(t, tt.id, ID(tt.arch, tt.kind, tt.bit))
			assert.Equal(t, tt.desc, Description(tt.arch, tt.kind, tt.bit))
		})
	}
}

func TestFeatureNamesUndefined(t *testing.T) {
	assert.Empty(t, ID(ArchX86, KindISA, 39))
	assert.Empty(t, ID(ArchX86, KindSIMD, 63))
	assert.Empty(t, ID(ArchX86, KindSystem, 40))
	assert.Empty(t, ID(ArchX86, KindSystem, 6))
	assert.Empty(t, ID(ArchUnknown, KindISA, 0))
	assert.Empty(t, ID(Architecture(99), KindSystem, 0))
	assert.Empty(t, Description(ArchARM, KindISA, 64))
}

func TestEveryTableEntryIsNamed(t *testing.T) {
	tables := map[string]nameTable{
		"generic": genericSystemNames,
		"x86isa":  x86ISANames, "x86simd": x86SIMDNames, "x86sys": x86SystemNames,
		"armisa": armISANames, "armsimd": armSIMDNames, "armsys": armSystemNames,
		"mipsisa": mipsISANames, "mipssimd": mipsSIMDNames, "ia64isa": ia64ISANames,
	}
	for label, table := range tables {
		for mask, n := range table {
			require.Len(t, Bits(mask), 1, "%s: %#x is not a single bit", label, mask)
			assert.NotEmpty(t, n.id, label)
			assert.NotEmpty(t, n.description, label)
			assert.False(t, strings.ContainsAny(n.id, " \t"), "%s: %q", label, n.id)
		}
	}
}

func TestNamesAndMasks(t *testing.T) {
	got := Names(ArchX86, KindSIMD, uint64(X86SSE|X86SSE2|X86AVX2|1<<62))
	assert.Equal(t, []string{"SSE", "SSE2", "AVX2"}, got)

	isa, simd, sys, ok := Masks(ArchX86, "ACE")
	require.True(t, ok)
	assert.Equal(t, X86ACE, isa)
	assert.Zero(t, simd)
	assert.Equal(t, X86SysACE, sys)

	_, simd, _, ok = Masks(ArchARM, "NEON")
	require.True(t, ok)
	assert.Equal(t, ARMNEON, simd)

	_, _, _, ok = Masks(ArchARM, "AVX2")
	assert.False(t, ok)
}

func TestSetMask(t *testing.T) {
	s := Set{Architecture: ArchX86, SIMD: X86SSE | X86AVX | X86AVX2, System: X86SysYMM}
	masked := s.Mask(0, X86AVX2, X86SysYMM)

	assert.Equal(t, X86SSE|X86AVX, masked.SIMD)
	assert.Zero(t, masked.System)
	assert.Equal(t, X86SSE|X86AVX|X86AVX2, s.SIMD)

	_, simd, _ := masked.Names()
	assert.Equal(t, []string{"SSE", "AVX"}, simd)
}

func TestBits(t *testing.T) {
	assert.Empty(t, Bits(0))
	assert.Equal(t, []uint{0, 5, 63}, Bits(1|1<<5|1<<63))
}
