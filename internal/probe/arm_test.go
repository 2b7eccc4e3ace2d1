package probe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cortexA9CPUInfo = `Processor	: ARMv7 Processor rev 10 (v7l)
processor	: 0
BogoMIPS	: 790.52
processor	: 1
Features	: swp half thumb fastmult vfp edsp neon vfpv3 tls
CPU implementer	: 0x41
CPU architecture: 7
CPU variant	: 0x2
CPU part	: 0xc09
CPU revision	: 10
`

const neoverseCPUInfo = `processor	: 0
BogoMIPS	: 50.00
Features	: fp asimd evtstrm aes pmull sha1 sha2 crc32 atomics fphp asimdhp cpuid asimdrdm lrcpc dcpop asimddp
CPU implementer	: 0x41
CPU architecture: 8
CPU variant	: 0x3
CPU part	: 0xd0c
CPU revision	: 1
`

func TestParseARMCPUInfo(t *testing.T) {
	info, err := ParseCPUInfo(strings.NewReader(cortexA9CPUInfo))
	require.NoError(t, err)

	a := ParseARMCPUInfo(info)
	assert.Equal(t, uint32(0x41), a.Implementer)
	assert.Equal(t, uint32(0xC09), a.Part)
	assert.Equal(t, uint32(2), a.Variant)
	assert.Equal(t, uint32(10), a.Revision)
	assert.Equal(t, uint32(7), a.Architecture)
	assert.False(t, a.AArch64)
	assert.True(t, a.Has("neon"))
	assert.False(t, a.Has("vfpv4"))
	assert.Equal(t, 2, info.Processors())

	info, err = ParseCPUInfo(strings.NewReader(neoverseCPUInfo))
	require.NoError(t, err)
	a = ParseARMCPUInfo(info)
	assert.Equal(t, uint32(0xD0C), a.Part)
	assert.Equal(t, uint32(8), a.Architecture)
	assert.True(t, a.Has("asimddp"))
}

func TestParseARMFields(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want uint32
	}{
		{"0x41", 2, 0x41},
		{"0x6", 2, 0x6},
		{"0x141", 2, 0},
		{"41", 2, 0},
		{"0x", 2, 0},
		{"0xzz", 2, 0},
		{"0xC0F", 3, 0xC0F},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseHexField(tt.in, tt.max), tt.in)
	}

	v, suffix, a64 := parseARMArchitecture("5TEJ")
	assert.Equal(t, uint32(5), v)
	assert.Equal(t, "TEJ", suffix)
	assert.False(t, a64)

	v, _, a64 = parseARMArchitecture("AArch64")
	assert.Equal(t, uint32(8), v)
	assert.True(t, a64)
}

func TestMergeARM(t *testing.T) {
	fromOS := &ARMFacts{Implementer: 0x41, Part: 0xD0C, Features: []string{"fp", "asimd", "asimddp", "sve", "asimdfhm"}}
	fromArch := &ARMFacts{
		AArch64:  true,
		Features: []string{"fp", "asimd", "aes"},
		Probes: map[string]Result{
			"asimddp":  Supported,
			"sve":      Unsupported,
			"bf16":     Supported,
			"asimdfhm": Unavailable,
		},
	}

	got := mergeARM(fromOS, fromArch)
	assert.ElementsMatch(t, []string{"fp", "asimd", "asimddp", "aes", "bf16"}, got.Features)
	assert.True(t, got.AArch64)
	assert.Equal(t, uint32(0xD0C), got.Part)
	// Inputs are untouched.
	assert.Equal(t, []string{"fp", "asimd", "asimddp", "sve", "asimdfhm"}, fromOS.Features)

	// With no recorded outcomes the hwcaps are trusted.
	got = mergeARM(fromOS, &ARMFacts{AArch64: true})
	assert.True(t, got.Has("asimdfhm"))

	assert.Nil(t, mergeARM(nil, nil))
	assert.Equal(t, []string{"x"}, mergeARM(&ARMFacts{Features: []string{"x"}}, nil).Features)
}

func TestParseMIPSCPUInfo(t *testing.T) {
	info, err := ParseCPUInfo(strings.NewReader("system type\t\t: JZ4770\ncpu model\t\t: Ingenic JZRISC V4.15  FPU V0.0\n" +
		"isa\t\t\t: mips1 mips2 mips32r1 mips32r2\nASEs implemented\t: mxu\n"))
	require.NoError(t, err)

	m := ParseMIPSCPUInfo(info)
	assert.Equal(t, "JZ4770", m.SystemType)
	assert.Equal(t, "Ingenic JZRISC V4.15  FPU V0.0", m.CPUModel)
	assert.Equal(t, []string{"mips1", "mips2", "mips32r1", "mips32r2"}, m.ISA)
	assert.Equal(t, []string{"mxu"}, m.ASEs)
}
