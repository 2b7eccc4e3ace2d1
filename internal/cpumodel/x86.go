package cpumodel

import (
	"github.com/hupe1980/cpudispatch/feature"
	"github.com/hupe1980/cpudispatch/internal/probe"
)

var x86Vendors = map[string]feature.Vendor{
	"GenuineIntel": feature.VendorIntel,
	"AuthenticAMD": feature.VendorAMD,
	"AMDisbetter!": feature.VendorAMD,
	"AMD ISBETTER": feature.VendorAMD,
	"CentaurHauls": feature.VendorVIA,
	"VIA VIA VIA ": feature.VendorVIA,
	"GenuineTMx86": feature.VendorTransmeta,
	"TransmetaCPU": feature.VendorTransmeta,
	"CyrixInstead": feature.VendorCyrix,
	"RiseRiseRise": feature.VendorRise,
	"Geode by NSC": feature.VendorNSC,
	"SiS SiS SiS ": feature.VendorSiS,
	"NexGenDriven": feature.VendorNexGen,
	"UMC UMC UMC ": feature.VendorUMC,
	"Genuine  RDC": feature.VendorRDC,
	"Vortex86 SoC": feature.VendorDMP,
}

// X86Vendor maps a CPUID vendor string onto a Vendor.
func X86Vendor(s string) feature.Vendor {
	return x86Vendors[s]
}

// X86Microarchitecture decodes a CPUID signature. family and model are the
// display values (extended fields already folded in). Cores that cannot run
// x86-64 code are only reported when x64 is false.
func X86Microarchitecture(v feature.Vendor, family, model int, x64 bool) feature.Microarchitecture {
	switch v {
	case feature.VendorIntel:
		return intelMicroarchitecture(family, model, x64)
	case feature.VendorAMD:
		return amdMicroarchitecture(family, model, x64)
	}
	return feature.UarchUnknown
}

func intelMicroarchitecture(family, model int, x64 bool) feature.Microarchitecture {
	switch family {
	case 0x05:
		if !x64 {
			return feature.UarchP5
		}
	case 0x06:
		switch model {
		case 0x01, 0x03, 0x05, 0x06, 0x07, 0x08, 0x0A, 0x0B:
			if !x64 {
				return feature.UarchP6
			}
		case 0x09, 0x0D, 0x15:
			if !x64 {
				return feature.UarchDothan
			}
		case 0x0E:
			if !x64 {
				return feature.UarchYonah
			}
		case 0x0F, 0x16:
			return feature.UarchConroe
		case 0x17, 0x1D:
			return feature.UarchPenryn
		case 0x1C, 0x26:
			return feature.UarchBonnell
		case 0x27, 0x35, 0x36:
			return feature.UarchSaltwell
		case 0x37, 0x4A, 0x4D:
			return feature.UarchSilvermont
		case 0x1A, 0x1E, 0x1F, 0x2E, 0x25, 0x2C, 0x2F:
			return feature.UarchNehalem
		case 0x2A, 0x2D:
			return feature.UarchSandyBridge
		case 0x3A, 0x3E:
			return feature.UarchIvyBridge
		case 0x3C, 0x3F, 0x45, 0x46:
			return feature.UarchHaswell
		}
	case 0x0B:
		if model == 0x01 {
			return feature.UarchKnightsCorner
		}
	case 0x0F:
		switch model {
		case 0x00, 0x01, 0x02:
			return feature.UarchWillamette
		case 0x03, 0x04, 0x06:
			return feature.UarchPrescott
		}
	}
	return feature.UarchUnknown
}

func amdMicroarchitecture(family, model int, x64 bool) feature.Microarchitecture {
	switch family {
	case 0x05:
		if x64 {
			break
		}
		switch model {
		case 0x00, 0x01, 0x02:
			return feature.UarchK5
		case 0x06, 0x07, 0x08, 0x0D:
			return feature.UarchK6
		case 0x0A:
			return feature.UarchGeode
		}
	case 0x06:
		if !x64 {
			return feature.UarchK7
		}
	case 0x0F, 0x11:
		return feature.UarchK8
	case 0x10, 0x12:
		return feature.UarchK10
	case 0x14:
		return feature.UarchBobcat
	case 0x15:
		switch model {
		case 0x00, 0x01:
			return feature.UarchBulldozer
		case 0x02, 0x10, 0x13:
			return feature.UarchPiledriver
		}
		switch model >> 4 {
		case 0x0:
			return feature.UarchBulldozer
		case 0x1, 0x2:
			return feature.UarchPiledriver
		case 0x3, 0x4:
			return feature.UarchSteamroller
		}
	case 0x16:
		return feature.UarchJaguar
	}
	return feature.UarchUnknown
}

type x86Bit struct {
	isa  feature.ISA
	simd feature.SIMD
	sys  feature.System
}

// x86Features maps github.com/klauspost/cpuid/v2 feature names onto bits.
// Vector register state bits follow the instruction sets: the detector only
// lists AVX and AVX-512 when the OS saves the wider registers. Bound register
// state is decided from XCR0 instead.
var x86Features = map[string]x86Bit{
	"X87":      {isa: feature.X86FPU, sys: feature.X86SysFPU},
	"CMOV":     {isa: feature.X86CMOV},
	"CMPXCHG8": {isa: feature.X86Cmpxchg8b},
	"CX16":     {isa: feature.X86Cmpxchg16b},
	"SYSEE":    {isa: feature.X86SYSENTER},
	"SYSCALL":  {isa: feature.X86SYSCALL},
	"FXSR":     {isa: feature.X86FXSAVE},
	"XSAVE":    {isa: feature.X86XSAVE},
	"LAHF":     {isa: feature.X86LahfSahf64},
	"MOVBE":    {isa: feature.X86Movbe},
	"POPCNT":   {isa: feature.X86Popcnt},
	"LZCNT":    {isa: feature.X86Lzcnt},
	"BMI1":     {isa: feature.X86BMI},
	"BMI2":     {isa: feature.X86BMI2},
	"TBM":      {isa: feature.X86TBM},
	"RDRAND":   {isa: feature.X86Rdrand},
	"AESNI":    {isa: feature.X86AES},
	"CLMUL":    {isa: feature.X86Pclmulqdq},
	"RDTSCP":   {isa: feature.X86Rdtscp},
	"HLE":      {isa: feature.X86HLE | feature.X86Xtest},
	"RTM":      {isa: feature.X86RTM | feature.X86Xtest},
	"RDSEED":   {isa: feature.X86Rdseed},
	"ADX":      {isa: feature.X86ADX},
	"SHA":      {isa: feature.X86SHA},
	"MPX":      {isa: feature.X86MPX},

	"MMX":         {simd: feature.X86MMX},
	"MMXEXT":      {simd: feature.X86MMXPlus},
	"AMD3DNOW":    {simd: feature.X86AMD3DNow | feature.X86AMD3DNowPrefetch},
	"AMD3DNOWEXT": {simd: feature.X86AMD3DNowPlus},
	"SSE":         {simd: feature.X86SSE, sys: feature.X86SysXMM},
	"SSE2":        {simd: feature.X86SSE2},
	"SSE3":        {simd: feature.X86SSE3},
	"SSSE3":       {simd: feature.X86SSSE3},
	"SSE4":        {simd: feature.X86SSE41},
	"SSE42":       {simd: feature.X86SSE42},
	"SSE4A":       {simd: feature.X86SSE4A},
	"AVX":         {simd: feature.X86AVX, sys: feature.X86SysYMM},
	"AVX2":        {simd: feature.X86AVX2},
	"XOP":         {simd: feature.X86XOP},
	"F16C":        {simd: feature.X86F16C},
	"FMA3":        {simd: feature.X86FMA3},
	"FMA4":        {simd: feature.X86FMA4},
	"AVX512F":     {simd: feature.X86AVX512F, sys: feature.X86SysZMM},
	"AVX512CD":    {simd: feature.X86AVX512CD},
	"AVX512ER":    {simd: feature.X86AVX512ER},
	"AVX512PF":    {simd: feature.X86AVX512PF},
	"AVX512BW":    {simd: feature.X86AVX512BW},
	"AVX512DQ":    {simd: feature.X86AVX512DQ},
	"AVX512VL":    {simd: feature.X86AVX512VL},
}

// XCR0 BNDREGS and BNDCSR state components.
const xcr0MPX = 1<<3 | 1<<4

// Bits every x86-64 processor has.
const (
	x64ISA  = feature.X86X64 | feature.X86CMOV | feature.X86Cmpxchg8b | feature.X86FPU | feature.X86FXSAVE
	x64SIMD = feature.X86MMX | feature.X86SSE | feature.X86SSE2
	x64Sys  = feature.X86SysFPU | feature.X86SysXMM
)

func decodeX86(m *Model, f *probe.Facts) {
	x := f.X86
	if x == nil {
		x = &probe.X86Facts{}
	}
	x64 := f.GOARCH == "amd64"
	s := &m.Set

	s.Vendor = X86Vendor(x.VendorString)
	s.Signature = feature.Signature{
		Family:   uint32(max(x.Family, 0)),
		Model:    uint32(max(x.Model, 0)),
		Stepping: uint32(max(x.Stepping, 0)),
	}
	s.Microarchitecture = X86Microarchitecture(s.Vendor, x.Family, x.Model, x64)

	s.ISA |= feature.X86Cpuid
	s.System |= feature.MisalignedAccess
	for _, name := range x.Features {
		if b, ok := x86Features[name]; ok {
			s.ISA |= b.isa
			s.SIMD |= b.simd
			s.System |= b.sys
		}
	}
	if s.ISA.Has(feature.X86MPX) && x.XCR0&xcr0MPX == xcr0MPX {
		s.System |= feature.X86SysBND
	}
	if x64 {
		s.ISA |= x64ISA
		s.SIMD |= x64SIMD
		s.System |= x64Sys
	}
	// Every processor from the Pentium on has a time-stamp counter.
	if x64 || x.Family >= 5 {
		s.ISA |= feature.X86Rdtsc
		s.System |= feature.CycleCounter | feature.CycleCounter64Bit
	}

	if m.Cores == 0 {
		m.Cores = x.LogicalCores
	}

	brand := x.Brand
	if brand == "" {
		brand = f.Brand
	}
	m.BriefName = BeautifyBrand(brand)
	if m.BriefName == "" {
		m.BriefName = x86FallbackName(s.ISA, s.SIMD)
	}
}

func x86FallbackName(isa feature.ISA, simd feature.SIMD) string {
	const (
		x64ISAMask  = feature.X86Cpuid | feature.X86Rdtsc | feature.X86X64
		x64SIMDMask = feature.X86SSE | feature.X86SSE2
		i586Mask    = feature.X86Cpuid | feature.X86Rdtsc | feature.X86FPU
		i686Mask    = i586Mask | feature.X86CMOV
	)
	switch {
	case isa.Has(x64ISAMask) && simd.Has(x64SIMDMask):
		return "x86-64 compatible"
	case isa.Has(i686Mask):
		return "i686 compatible"
	case isa.Has(i586Mask):
		return "i586 compatible"
	default:
		return "i486 compatible"
	}
}
