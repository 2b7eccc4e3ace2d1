package feature

// Kind selects one of the three feature masks.
type Kind uint8

const (
	KindISA Kind = iota
	KindSIMD
	KindSystem
)

func (k Kind) String() string {
	switch k {
	case KindISA:
		return "isa"
	case KindSIMD:
		return "simd"
	case KindSystem:
		return "system"
	default:
		return "unknown"
	}
}

type name struct {
	id, description string
}

type nameTable map[uint64]name

var genericSystemNames = nameTable{
	uint64(CycleCounter):      {"CycleCounter", "CPU cycle counter"},
	uint64(CycleCounter64Bit): {"CycleCounter64Bit", "64-bit CPU cycle counter"},
	uint64(AddressSpace64Bit): {"AddressSpace64Bit", "64-bit address space"},
	uint64(GPRegisters64Bit):  {"GPRegisters64Bit", "64-bit general-purpose registers"},
	uint64(MisalignedAccess):  {"MisalignedAccess", "Misaligned memory access"},
	uint64(SingleThreaded):    {"SingleThreaded", "Single hardware thread"},
}

var x86ISANames = nameTable{
	uint64(X86FPU):        {"FPU", "x87 FPU"},
	uint64(X86Cpuid):      {"Cpuid", "CPUID instruction"},
	uint64(X86Rdtsc):      {"Rdtsc", "RDTSC instruction"},
	uint64(X86CMOV):       {"CMOV", "CMOV instruction"},
	uint64(X86SYSENTER):   {"SYSENTER", "SYSENTER and SYSEXIT instructions"},
	uint64(X86SYSCALL):    {"SYSCALL", "SYSCALL and SYSRET instructions"},
	uint64(X86MSR):        {"MSR", "RDMSR and WRMSR instructions"},
	uint64(X86Clflush):    {"Clflush", "CLFLUSH instruction"},
	uint64(X86MONITOR):    {"MONITOR", "MONITOR and MWAIT instructions"},
	uint64(X86FXSAVE):     {"FXSAVE", "FXSAVE and FXRSTOR instructions"},
	uint64(X86XSAVE):      {"XSAVE", "XSAVE, XRSTOR, XGETBV, and XSETBV instructions"},
	uint64(X86Cmpxchg8b):  {"Cmpxchg8b", "CMPXCHG8B instruction"},
	uint64(X86Cmpxchg16b): {"Cmpxchg16b", "CMPXCHG16B instruction"},
	uint64(X86X64):        {"X64", "x86-64 mode"},
	uint64(X86LahfSahf64): {"LahfSahf64", "LAHF and SAHF instructions in x86-64 mode"},
	uint64(X86FsGsBase):   {"FsGsBase", "RDFSBASE, RDGSBASE, WRFSBASE, and WRGSBASE instructions"},
	uint64(X86Movbe):      {"Movbe", "MOVBE instruction"},
	uint64(X86Popcnt):     {"Popcnt", "POPCNT instruction"},
	uint64(X86Lzcnt):      {"Lzcnt", "LZCNT instruction"},
	uint64(X86BMI):        {"BMI", "BMI instruction set"},
	uint64(X86BMI2):       {"BMI2", "BMI 2 instruction set"},
	uint64(X86TBM):        {"TBM", "TBM instruction set"},
	uint64(X86Rdrand):     {"Rdrand", "RDRAND instruction"},
	uint64(X86ACE):        {"ACE", "Padlock Advanced Cryptography Engine"},
	uint64(X86ACE2):       {"ACE2", "Padlock Advanced Cryptography Engine 2"},
	uint64(X86RNG):        {"RNG", "Padlock Random Number Generator"},
	uint64(X86PHE):        {"PHE", "Padlock Hash Engine"},
	uint64(X86PMM):        {"PMM", "Padlock Montgomery Multiplier"},
	uint64(X86AES):        {"AES", "AES instruction set"},
	uint64(X86Pclmulqdq):  {"Pclmulqdq", "PCLMULQDQ instruction"},
	uint64(X86Rdtscp):     {"Rdtscp", "RDTSCP instruction"},
	uint64(X86LWP):        {"LWP", "Lightweight Profiling extension"},
	uint64(X86HLE):        {"HLE", "Hardware Lock Elision extension"},
	uint64(X86RTM):        {"RTM", "Restricted Transactional Memory extension"},
	uint64(X86Xtest):      {"Xtest", "XTEST instruction"},
	uint64(X86Rdseed):     {"Rdseed", "RDSEED instruction"},
	uint64(X86ADX):        {"ADX", "ADCX and ADOX instructions"},
	uint64(X86SHA):        {"SHA", "SHA instructions"},
	uint64(X86MPX):        {"MPX", "Memory Protection extension"},
}

var x86SIMDNames = nameTable{
	uint64(X86MMX):              {"MMX", "MMX instruction set"},
	uint64(X86MMXPlus):          {"MMXPlus", "MMX+ instruction set"},
	uint64(X86EMMX):             {"EMMX", "EMMX instruction set"},
	uint64(X86AMD3DNow):         {"3dnow", "3dnow! instruction set"},
	uint64(X86AMD3DNowPlus):     {"3dnowPlus", "3dnow!+ instruction set"},
	uint64(X86AMD3DNowPrefetch): {"3dnowPrefetch", "3dnow! prefetch instructions"},
	uint64(X86AMD3DNowGeode):    {"3dnowGeode", "Geode 3dnow! instructions"},
	uint64(X86SSE):              {"SSE", "SSE instruction set"},
	uint64(X86SSE2):             {"SSE2", "SSE 2 instruction set"},
	uint64(X86SSE3):             {"SSE3", "SSE 3 instruction set"},
	uint64(X86SSSE3):            {"SSSE3", "Supplemental SSE 3 instruction set"},
	uint64(X86SSE41):            {"SSE4_1", "SSE 4.1 instruction set"},
	uint64(X86SSE42):            {"SSE4_2", "SSE 4.2 instruction set"},
	uint64(X86SSE4A):            {"SSE4A", "SSE 4A instruction set"},
	uint64(X86AVX):              {"AVX", "AVX instruction set"},
	uint64(X86AVX2):             {"AVX2", "AVX 2 instruction set"},
	uint64(X86XOP):              {"XOP", "XOP instruction set"},
	uint64(X86F16C):             {"F16C", "F16C instruction set"},
	uint64(X86FMA3):             {"FMA3", "FMA3 instruction set"},
	uint64(X86FMA4):             {"FMA4", "FMA4 instruction set"},
	uint64(X86KNF):              {"KNF", "KNF instruction set"},
	uint64(X86KNC):              {"KNC", "KNC instruction set"},
	uint64(X86AVX512F):          {"AVX512F", "AVX-512 Foundation instructions"},
	uint64(X86AVX512CD):         {"AVX512CD", "AVX-512 Conflict Detection instructions"},
	uint64(X86AVX512ER):         {"AVX512ER", "AVX-512 Exponential and Reciprocal instructions"},
	uint64(X86AVX512PF):         {"AVX512PF", "AVX-512 Prefetch instructions"},
	uint64(X86AVX512BW):         {"AVX512BW", "AVX-512 Byte and Word instructions"},
	uint64(X86AVX512DQ):         {"AVX512DQ", "AVX-512 Doubleword and Quadword instructions"},
	uint64(X86AVX512VL):         {"AVX512VL", "AVX-512 Vector Length extensions"},
}

var x86SystemNames = nameTable{
	uint64(X86SysACE):           {"ACE", "Padlock Advanced Cryptography Engine"},
	uint64(X86SysACE2):          {"ACE2", "Padlock Advanced Cryptography Engine 2"},
	uint64(X86SysRNG):           {"RNG", "Padlock Random Number Generator"},
	uint64(X86SysPHE):           {"PHE", "Padlock Hash Engine"},
	uint64(X86SysPMM):           {"PMM", "Padlock Montgomery Multiplier"},
	uint64(X86SysMisalignedSSE): {"MisalignedSSE", "Misaligned memory operands in SSE instructions"},
	uint64(X86SysFPU):           {"FPU", "x87 FPU registers"},
	uint64(X86SysXMM):           {"XMM", "XMM registers"},
	uint64(X86SysYMM):           {"YMM", "YMM registers"},
	uint64(X86SysZMM):           {"ZMM", "ZMM registers"},
	uint64(X86SysBND):           {"BND", "BND registers"},
}

var armISANames = nameTable{
	uint64(ARMV4):      {"V4", "ARMv4 instruction set"},
	uint64(ARMV5):      {"V5", "ARMv5 instruction set"},
	uint64(ARMV5E):     {"V5E", "ARMv5 DSP instructions"},
	uint64(ARMV6):      {"V6", "ARMv6 instruction set"},
	uint64(ARMV6K):     {"V6K", "ARMv6 Multiprocessing extensions"},
	uint64(ARMV7):      {"V7", "ARMv7 instruction set"},
	uint64(ARMV7MP):    {"V7MP", "ARMv7 Multiprocessing extensions"},
	uint64(ARMThumb):   {"Thumb", "Thumb mode"},
	uint64(ARMThumb2):  {"Thumb2", "Thumb-2 mode"},
	uint64(ARMThumbEE): {"ThumbEE", "Thumb EE mode"},
	uint64(ARMJazelle): {"Jazelle", "Jazelle extension"},
	uint64(ARMFPA):     {"FPA", "FPA instruction set"},
	uint64(ARMVFP):     {"VFP", "VFP instruction set"},
	uint64(ARMVFP2):    {"VFP2", "VFPv2 instruction set"},
	uint64(ARMVFP3):    {"VFP3", "VFPv3 instruction set"},
	uint64(ARMVFPd32):  {"VFPd32", "VFP with 32 DP registers"},
	uint64(ARMVFP3HP):  {"VFP3HP", "VFPv3 half-precision extension"},
	uint64(ARMVFP4):    {"VFP4", "VFPv4 instruction set"},
	uint64(ARMDiv):     {"Div", "SDIV and UDIV instructions"},
	uint64(ARMArmada):  {"Armada", "Marvell Armada instruction extensions"},
	uint64(ARMV8):      {"V8", "ARMv8 AArch64 instruction set"},
	uint64(ARMCRC32):   {"CRC32", "CRC32 instructions"},
	uint64(ARMAES):     {"AES", "AES instructions"},
	uint64(ARMPMULL):   {"PMULL", "PMULL polynomial multiply instructions"},
	uint64(ARMSHA1):    {"SHA1", "SHA-1 instructions"},
	uint64(ARMSHA2):    {"SHA2", "SHA-256 instructions"},
	uint64(ARMAtomics): {"Atomics", "Large System Extensions atomic instructions"},
	uint64(ARMRDM):     {"RDM", "Rounding double multiply accumulate instructions"},
	uint64(ARMJSCVT):   {"JSCVT", "JavaScript conversion instruction"},
	uint64(ARMFCMA):    {"FCMA", "Complex number multiply-add instructions"},
	uint64(ARMSHA3):    {"SHA3", "SHA-3 instructions"},
	uint64(ARMSHA512):  {"SHA512", "SHA-512 instructions"},
}

var armSIMDNames = nameTable{
	uint64(ARMXScale):   {"XScale", "XScale instructions"},
	uint64(ARMWMMX):     {"WMMX", "Wireless MMX instruction set"},
	uint64(ARMWMMX2):    {"WMMX2", "Wireless MMX 2 instruction set"},
	uint64(ARMNEON):     {"NEON", "NEON (Advanced SIMD) instruction set"},
	uint64(ARMNEONHP):   {"NEONHP", "NEON (Advanced SIMD) half-precision extension"},
	uint64(ARMNEON2):    {"NEON2", "NEON (Advanced SIMD) v2 instruction set"},
	uint64(ARMNEONDot):  {"NEONDot", "NEON (Advanced SIMD) dot product instructions"},
	uint64(ARMNEONFHM):  {"NEONFHM", "NEON (Advanced SIMD) half-precision multiply-accumulate instructions"},
	uint64(ARMSVE):      {"SVE", "Scalable Vector Extension"},
	uint64(ARMSVE2):     {"SVE2", "Scalable Vector Extension 2"},
	uint64(ARMNEONBF16): {"NEONBF16", "NEON (Advanced SIMD) BFloat16 instructions"},
}

var armSystemNames = nameTable{
	uint64(ARMSysVFPVectorMode): {"VFPVectorMode", "Hardware VFP vector mode"},
	uint64(ARMSysFPA):           {"FPA", "FPA registers"},
	uint64(ARMSysWMMX):          {"WMMX", "WMMX registers"},
	uint64(ARMSysS32):           {"S32", "32 VFP S registers"},
	uint64(ARMSysD32):           {"D32", "32 VFP D registers"},
}

var mipsISANames = nameTable{
	uint64(MIPSI):         {"MIPS_I", "MIPS I instructions"},
	uint64(MIPSII):        {"MIPS_II", "MIPS II instructions"},
	uint64(MIPSIII):       {"MIPS_III", "MIPS III instructions"},
	uint64(MIPSIV):        {"MIPS_IV", "MIPS IV instructions"},
	uint64(MIPSV):         {"MIPS_V", "MIPS V instructions"},
	uint64(MIPSR1):        {"R1", "MIPS32/MIPS64 Release 1 instructions"},
	uint64(MIPSR2):        {"R2", "MIPS32/MIPS64 Release 2 instructions"},
	uint64(MIPSFPU):       {"FPU", "FPU with S, D, and W formats"},
	uint64(MIPSMIPS16):    {"MIPS16", "MIPS16 extension"},
	uint64(MIPSSmartMIPS): {"SmartMIPS", "SmartMIPS extension"},
	uint64(MIPSMT):        {"MT", "Multi-threading extension"},
	uint64(MIPSMicroMIPS): {"MicroMIPS", "MicroMIPS extension"},
	uint64(MIPSVZ):        {"VZ", "Virtualization extension"},
}

var mipsSIMDNames = nameTable{
	uint64(MIPSMDMX):         {"MDMX", "MDMX instruction set"},
	uint64(MIPSPairedSingle): {"PairedSingle", "Paired-single instructions"},
	uint64(MIPSMIPS3D):       {"MIPS3D", "MIPS3D instruction set"},
	uint64(MIPSDSP):          {"DSP", "MIPS DSP extension"},
	uint64(MIPSDSP2):         {"DSP2", "MIPS DSP Release 2 extension"},
	uint64(MIPSGodsonMMX):    {"GodsonMMX", "Loongson (Godson) MMX instruction set"},
	uint64(MIPSMXU):          {"MXU", "Ingenic Media Extension"},
	uint64(MIPSMXU2):         {"MXU2", "Ingenic Media Extension 2"},
}

var ia64ISANames = nameTable{
	uint64(IA64Brl):       {"Brl", "Long branch instruction"},
	uint64(IA64Atomic128): {"Atomic128", "128-bit atomic compare-and-exchange"},
	uint64(IA64Clz):       {"Clz", "Count leading zeros instruction"},
	uint64(IA64Mpy4):      {"Mpy4", "MPY4 and MPYSHL4 instructions"},
}

func tableFor(arch Architecture, kind Kind) nameTable {
	switch arch {
	case ArchX86:
		switch kind {
		case KindISA:
			return x86ISANames
		case KindSIMD:
			return x86SIMDNames
		case KindSystem:
			return x86SystemNames
		}
	case ArchARM:
		switch kind {
		case KindISA:
			return armISANames
		case KindSIMD:
			return armSIMDNames
		case KindSystem:
			return armSystemNames
		}
	case ArchMIPS:
		switch kind {
		case KindISA:
			return mipsISANames
		case KindSIMD:
			return mipsSIMDNames
		}
	case ArchIA64:
		if kind == KindISA {
			return ia64ISANames
		}
	}
	return nil
}

func lookup(arch Architecture, kind Kind, bit uint) (name, bool) {
	if bit >= 64 {
		return name{}, false
	}
	mask := uint64(1) << bit
	if n, ok := tableFor(arch, kind)[mask]; ok {
		return n, true
	}
	if kind == KindSystem && bit < 32 && arch.Defined() {
		n, ok := genericSystemNames[mask]
		return n, ok
	}
	return name{}, false
}

// ID returns the short identifier of a feature bit, or "" if the bit has
// no meaning for the architecture.
func ID(arch Architecture, kind Kind, bit uint) string {
	n, _ := lookup(arch, kind, bit)
	return n.id
}

// Description returns the human-readable name of a feature bit, or "" if
// the bit has no meaning for the architecture.
func Description(arch Architecture, kind Kind, bit uint) string {
	n, _ := lookup(arch, kind, bit)
	return n.description
}

// Names returns the identifiers of every named bit set in mask, in bit order.
// Bits without a name are skipped.
func Names(arch Architecture, kind Kind, mask uint64) []string {
	var out []string
	for _, b := range Bits(mask) {
		if n, ok := lookup(arch, kind, b); ok {
			out = append(out, n.id)
		}
	}
	return out
}

// Masks resolves a feature identifier to the bits it names for arch.
// An identifier may name bits in more than one mask (x86 "ACE" is both an
// instruction set and a system feature). Identifiers are case-sensitive.
func Masks(arch Architecture, id string) (isa ISA, simd SIMD, sys System, ok bool) {
	for mask, n := range tableFor(arch, KindISA) {
		if n.id == id {
			isa |= ISA(mask)
		}
	}
	for mask, n := range tableFor(arch, KindSIMD) {
		if n.id == id {
			simd |= SIMD(mask)
		}
	}
	for mask, n := range tableFor(arch, KindSystem) {
		if n.id == id {
			sys |= System(mask)
		}
	}
	for mask, n := range genericSystemNames {
		if n.id == id {
			sys |= System(mask)
		}
	}
	return isa, simd, sys, isa|ISA(simd)|ISA(sys) != 0
}
