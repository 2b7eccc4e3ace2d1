package feature

import "math/bits"

// ISA is a set of instruction-set features. Bit meaning depends on the architecture.
type ISA uint64

// SIMD is a set of SIMD extensions. Bit meaning depends on the architecture.
type SIMD uint64

// System is a set of system and software features. Bits 0..31 are shared
// by every architecture; bits 32..63 are architecture-specific.
type System uint64

// Has reports whether every bit of want is present in s.
func (s ISA) Has(want ISA) bool { return s&want == want }

// Has reports whether every bit of want is present in s.
func (s SIMD) Has(want SIMD) bool { return s&want == want }

// Has reports whether every bit of want is present in s.
func (s System) Has(want System) bool { return s&want == want }

// Generic system features.
const (
	CycleCounter      System = 1 << 0
	CycleCounter64Bit System = 1 << 1
	AddressSpace64Bit System = 1 << 2
	GPRegisters64Bit  System = 1 << 3
	MisalignedAccess  System = 1 << 4
	SingleThreaded    System = 1 << 5
)

// x86 ISA features.
const (
	X86FPU        ISA = 1 << 0
	X86Cpuid      ISA = 1 << 1
	X86Rdtsc      ISA = 1 << 2
	X86CMOV       ISA = 1 << 3
	X86SYSENTER   ISA = 1 << 4
	X86SYSCALL    ISA = 1 << 5
	X86MSR        ISA = 1 << 6
	X86Clflush    ISA = 1 << 7
	X86MONITOR    ISA = 1 << 8
	X86FXSAVE     ISA = 1 << 9
	X86XSAVE      ISA = 1 << 10
	X86Cmpxchg8b  ISA = 1 << 11
	X86Cmpxchg16b ISA = 1 << 12
	X86X64        ISA = 1 << 13
	X86LahfSahf64 ISA = 1 << 14
	X86FsGsBase   ISA = 1 << 15
	X86Movbe      ISA = 1 << 16
	X86Popcnt     ISA = 1 << 17
	X86Lzcnt      ISA = 1 << 18
	X86BMI        ISA = 1 << 19
	X86BMI2       ISA = 1 << 20
	X86TBM        ISA = 1 << 21
	X86Rdrand     ISA = 1 << 22
	X86ACE        ISA = 1 << 23
	X86ACE2       ISA = 1 << 24
	X86RNG        ISA = 1 << 25
	X86PHE        ISA = 1 << 26
	X86PMM        ISA = 1 << 27
	X86AES        ISA = 1 << 28
	X86Pclmulqdq  ISA = 1 << 29
	X86Rdtscp     ISA = 1 << 30
	X86LWP        ISA = 1 << 31
	X86HLE        ISA = 1 << 32
	X86RTM        ISA = 1 << 33
	X86Xtest      ISA = 1 << 34
	X86Rdseed     ISA = 1 << 35
	X86ADX        ISA = 1 << 36
	X86SHA        ISA = 1 << 37
	X86MPX        ISA = 1 << 38
)

// x86 SIMD features.
const (
	X86MMX              SIMD = 1 << 0
	X86MMXPlus          SIMD = 1 << 1
	X86EMMX             SIMD = 1 << 2
	X86AMD3DNow         SIMD = 1 << 3
	X86AMD3DNowPlus     SIMD = 1 << 4
	X86AMD3DNowPrefetch SIMD = 1 << 5
	X86AMD3DNowGeode    SIMD = 1 << 6
	X86SSE              SIMD = 1 << 7
	X86SSE2             SIMD = 1 << 8
	X86SSE3             SIMD = 1 << 9
	X86SSSE3            SIMD = 1 << 10
	X86SSE41            SIMD = 1 << 11
	X86SSE42            SIMD = 1 << 12
	X86SSE4A            SIMD = 1 << 13
	X86AVX              SIMD = 1 << 14
	X86AVX2             SIMD = 1 << 15
	X86XOP              SIMD = 1 << 16
	X86F16C             SIMD = 1 << 17
	X86FMA3             SIMD = 1 << 18
	X86FMA4             SIMD = 1 << 19
	X86KNF              SIMD = 1 << 20
	X86KNC              SIMD = 1 << 21
	X86AVX512F          SIMD = 1 << 22
	X86AVX512CD         SIMD = 1 << 23
	X86AVX512ER         SIMD = 1 << 24
	X86AVX512PF         SIMD = 1 << 25
	X86AVX512BW         SIMD = 1 << 26
	X86AVX512DQ         SIMD = 1 << 27
	X86AVX512VL         SIMD = 1 << 28
)

// x86 system features.
const (
	X86SysACE           System = 1 << 32
	X86SysACE2          System = 1 << 33
	X86SysRNG           System = 1 << 34
	X86SysPHE           System = 1 << 35
	X86SysPMM           System = 1 << 36
	X86SysMisalignedSSE System = 1 << 37
	X86SysFPU           System = 1 << 52
	X86SysXMM           System = 1 << 53
	X86SysYMM           System = 1 << 54
	X86SysZMM           System = 1 << 55
	X86SysBND           System = 1 << 56
)

// ARM ISA features. Bits 20 and above describe AArch64.
const (
	ARMV4      ISA = 1 << 0
	ARMV5      ISA = 1 << 1
	ARMV5E     ISA = 1 << 2
	ARMV6      ISA = 1 << 3
	ARMV6K     ISA = 1 << 4
	ARMV7      ISA = 1 << 5
	ARMV7MP    ISA = 1 << 6
	ARMThumb   ISA = 1 << 7
	ARMThumb2  ISA = 1 << 8
	ARMThumbEE ISA = 1 << 9
	ARMJazelle ISA = 1 << 10
	ARMFPA     ISA = 1 << 11
	ARMVFP     ISA = 1 << 12
	ARMVFP2    ISA = 1 << 13
	ARMVFP3    ISA = 1 << 14
	ARMVFPd32  ISA = 1 << 15
	ARMVFP3HP  ISA = 1 << 16
	ARMVFP4    ISA = 1 << 17
	ARMDiv     ISA = 1 << 18
	ARMArmada  ISA = 1 << 19
	ARMV8      ISA = 1 << 20
	ARMCRC32   ISA = 1 << 21
	ARMAES     ISA = 1 << 22
	ARMPMULL   ISA = 1 << 23
	ARMSHA1    ISA = 1 << 24
	ARMSHA2    ISA = 1 << 25
	ARMAtomics ISA = 1 << 26
	ARMRDM     ISA = 1 << 27
	ARMJSCVT   ISA = 1 << 28
	ARMFCMA    ISA = 1 << 29
	ARMSHA3    ISA = 1 << 30
	ARMSHA512  ISA = 1 << 31
)

// ARM SIMD features.
const (
	ARMXScale   SIMD = 1 << 0
	ARMWMMX     SIMD = 1 << 1
	ARMWMMX2    SIMD = 1 << 2
	ARMNEON     SIMD = 1 << 3
	ARMNEONHP   SIMD = 1 << 4
	ARMNEON2    SIMD = 1 << 5
	ARMNEONDot  SIMD = 1 << 6
	ARMNEONFHM  SIMD = 1 << 7
	ARMSVE      SIMD = 1 << 8
	ARMSVE2     SIMD = 1 << 9
	ARMNEONBF16 SIMD = 1 << 10
)

// ARM system features.
const (
	ARMSysVFPVectorMode System = 1 << 32
	ARMSysFPA           System = 1 << 56
	ARMSysWMMX          System = 1 << 57
	ARMSysS32           System = 1 << 58
	ARMSysD32           System = 1 << 59
)

// IA64 ISA features.
const (
	IA64Brl       ISA = 1 << 0
	IA64Atomic128 ISA = 1 << 1
	IA64Clz       ISA = 1 << 2
	IA64Mpy4      ISA = 1 << 3
)

// MIPS ISA features.
const (
	MIPSI         ISA = 1 << 0
	MIPSII        ISA = 1 << 1
	MIPSIII       ISA = 1 << 2
	MIPSIV        ISA = 1 << 3
	MIPSV         ISA = 1 << 4
	MIPSR1        ISA = 1 << 5
	MIPSR2        ISA = 1 << 6
	MIPSFPU       ISA = 1 << 24
	MIPSMIPS16    ISA = 1 << 25
	MIPSSmartMIPS ISA = 1 << 26
	MIPSMT        ISA = 1 << 27
	MIPSMicroMIPS ISA = 1 << 28
	MIPSVZ        ISA = 1 << 29
)

// MIPS SIMD features.
const (
	MIPSMDMX         SIMD = 1 << 0
	MIPSPairedSingle SIMD = 1 << 1
	MIPSMIPS3D       SIMD = 1 << 2
	MIPSDSP          SIMD = 1 << 3
	MIPSDSP2         SIMD = 1 << 4
	MIPSGodsonMMX    SIMD = 1 << 5
	MIPSMXU          SIMD = 1 << 6
	MIPSMXU2         SIMD = 1 << 7
)

// Bits returns the positions of the set bits of mask in ascending order.
func Bits(mask uint64) []uint {
	out := make([]uint, 0, bits.OnesCount64(mask))
	for mask != 0 {
		b := uint(bits.TrailingZeros64(mask))
		out = append(out, b)
		mask &^= 1 << b
	}
	return out
}
