package cpumodel

import (
	"github.com/hupe1980/cpudispatch/feature"
	"github.com/hupe1980/cpudispatch/internal/probe"
)

// ARM implementer codes from the Main ID register.
const (
	implementerARM      = 'A'
	implementerDEC      = 'D'
	implementerMotorola = 'M'
	implementerQualcomm = 'Q'
	implementerTI       = 'T'
	implementerMarvell  = 'V'
	implementerApple    = 'a'
	implementerIntel    = 'i'
)

// ARMMicroarchitecture decodes the implementer and part number. Qualcomm
// part 0x00F is a Cortex-A5 when the core has VFPv4 and a Scorpion otherwise.
func ARMMicroarchitecture(implementer, part uint32, vfpv4 bool) (feature.Vendor, feature.Microarchitecture) {
	switch implementer {
	case implementerARM:
		switch part {
		case 0xB02, 0xB36, 0xB56, 0xB76:
			return feature.VendorARM, feature.UarchARM11
		case 0xC05:
			return feature.VendorARM, feature.UarchCortexA5
		case 0xC07:
			return feature.VendorARM, feature.UarchCortexA7
		case 0xC08:
			return feature.VendorARM, feature.UarchCortexA8
		case 0xC09:
			return feature.VendorARM, feature.UarchCortexA9
		case 0xC0F:
			return feature.VendorARM, feature.UarchCortexA15
		case 0xD03:
			return feature.VendorARM, feature.UarchCortexA53
		case 0xD05:
			return feature.VendorARM, feature.UarchCortexA55
		case 0xD07:
			return feature.VendorARM, feature.UarchCortexA57
		case 0xD08:
			return feature.VendorARM, feature.UarchCortexA72
		case 0xD0B:
			return feature.VendorARM, feature.UarchCortexA76
		case 0xD0C:
			return feature.VendorARM, feature.UarchNeoverseN1
		case 0xD40:
			return feature.VendorARM, feature.UarchNeoverseV1
		case 0xD49:
			return feature.VendorARM, feature.UarchNeoverseN2
		case 0xD4F:
			return feature.VendorARM, feature.UarchNeoverseV2
		}
		switch part & 0xF00 {
		case 0x700:
			return feature.VendorARM, feature.UarchARM7
		case 0x900:
			return feature.VendorARM, feature.UarchARM9
		}
		return feature.VendorARM, feature.UarchUnknown
	case implementerDEC:
		return feature.VendorDEC, feature.UarchStrongARM
	case implementerMotorola:
		return feature.VendorMotorola, feature.UarchUnknown
	case implementerTI:
		if part == 0x925 {
			return feature.VendorARM, feature.UarchARM9
		}
		return feature.VendorTI, feature.UarchUnknown
	case implementerQualcomm:
		switch part {
		case 0x00F:
			if vfpv4 {
				return feature.VendorARM, feature.UarchCortexA5
			}
			return feature.VendorQualcomm, feature.UarchScorpion
		case 0x02D:
			return feature.VendorQualcomm, feature.UarchScorpion
		case 0x04D, 0x06F:
			return feature.VendorQualcomm, feature.UarchKrait
		}
		return feature.VendorQualcomm, feature.UarchUnknown
	case implementerMarvell:
		switch part {
		case 0x131, 0x301, 0x331, 0x531, 0x571, 0x693:
			return feature.VendorMarvell, feature.UarchPJ1
		case 0x581:
			return feature.VendorMarvell, feature.UarchPJ4
		}
		return feature.VendorMarvell, feature.UarchUnknown
	case implementerIntel:
		if part == 0xB11 {
			return feature.VendorIntel, feature.UarchStrongARM
		}
		switch part & 0xF00 {
		case 0x200, 0x400, 0x600:
			return feature.VendorIntel, feature.UarchXScale
		}
		return feature.VendorIntel, feature.UarchUnknown
	case implementerApple:
		return feature.VendorApple, feature.UarchUnknown
	}
	return feature.VendorUnknown, feature.UarchUnknown
}

// arm64Tokens maps AArch64 hwcap names onto bits.
var arm64Tokens = map[string]struct {
	isa  feature.ISA
	simd feature.SIMD
}{
	"aes":      {isa: feature.ARMAES},
	"pmull":    {isa: feature.ARMPMULL},
	"sha1":     {isa: feature.ARMSHA1},
	"sha2":     {isa: feature.ARMSHA2},
	"sha3":     {isa: feature.ARMSHA3},
	"sha512":   {isa: feature.ARMSHA512},
	"crc32":    {isa: feature.ARMCRC32},
	"atomics":  {isa: feature.ARMAtomics},
	"asimdrdm": {isa: feature.ARMRDM},
	"jscvt":    {isa: feature.ARMJSCVT},
	"fcma":     {isa: feature.ARMFCMA},
	"asimd":    {simd: feature.ARMNEON | feature.ARMNEON2},
	"asimdhp":  {simd: feature.ARMNEONHP},
	"asimddp":  {simd: feature.ARMNEONDot},
	"asimdfhm": {simd: feature.ARMNEONFHM},
	"sve":      {simd: feature.ARMSVE},
	"sve2":     {simd: feature.ARMSVE2},
	"bf16":     {simd: feature.ARMNEONBF16},
}

const armVFPv4 = feature.ARMVFP | feature.ARMVFP2 | feature.ARMVFP3 | feature.ARMVFPd32 | feature.ARMVFP3HP | feature.ARMVFP4

func decodeARM(m *Model, f *probe.Facts) {
	a := f.ARM
	if a == nil {
		a = &probe.ARMFacts{}
	}
	s := &m.Set

	s.Vendor, s.Microarchitecture = ARMMicroarchitecture(a.Implementer, a.Part, a.Has("vfpv4"))
	s.Signature = feature.Signature{Family: a.Architecture, Model: a.Part, Stepping: a.Revision}

	if a.AArch64 || f.GOARCH == "arm64" {
		decodeARM64(s, a)
	} else {
		decodeARM32(s, a)
	}
	if s.Microarchitecture == feature.UarchXScale {
		s.SIMD |= feature.ARMXScale
	}

	m.BriefName = armBriefName(s.Microarchitecture, s.ISA)
	if s.Vendor != feature.VendorARM || s.Microarchitecture != feature.UarchUnknown {
		m.FullName = fullName(s.Vendor, m.BriefName)
	} else {
		// "ARMv7-A compatible" rather than "ARM ARMv7-A compatible".
		m.FullName = m.BriefName
	}
}

func decodeARM64(s *feature.Set, a *probe.ARMFacts) {
	s.ISA |= feature.ARMV8
	s.System |= feature.MisalignedAccess
	for _, token := range a.Features {
		if b, ok := arm64Tokens[token]; ok {
			s.ISA |= b.isa
			s.SIMD |= b.simd
		}
	}
	// AArch64 floating point covers the VFPv4 register file and instructions.
	if a.Has("fp") {
		s.ISA |= armVFPv4
		s.System |= feature.ARMSysS32 | feature.ARMSysD32
	}
}

func decodeARM32(s *feature.Set, a *probe.ARMFacts) {
	v := a.Architecture
	if v >= 4 {
		s.ISA |= feature.ARMV4
	}
	if v >= 5 {
		s.ISA |= feature.ARMV5
		for _, c := range a.ArchSuffix {
			if c == 'E' {
				s.ISA |= feature.ARMV5E
			}
		}
	}
	if v >= 6 {
		s.ISA |= feature.ARMV6
	}
	// ARM11 cores report the new CPUID scheme as architecture 7.
	if v >= 7 && s.Microarchitecture != feature.UarchARM11 {
		s.ISA |= feature.ARMV5E | feature.ARMV6K | feature.ARMV7 | feature.ARMThumb | feature.ARMThumb2
	}
	if v >= 8 {
		s.ISA |= feature.ARMV8
	}

	var d16 bool
	for _, token := range a.Features {
		switch token {
		case "thumb":
			s.ISA |= feature.ARMThumb
		case "fpa":
			s.ISA |= feature.ARMFPA
			s.System |= feature.ARMSysFPA
		case "vfp":
			s.ISA |= feature.ARMVFP
			s.System |= feature.ARMSysS32
		case "edsp":
			s.ISA |= feature.ARMV5E
		case "java":
			s.ISA |= feature.ARMJazelle
		case "iwmmxt":
			s.SIMD |= feature.ARMWMMX
			s.System |= feature.ARMSysWMMX
		case "thumbee":
			s.ISA |= feature.ARMThumbEE
		case "neon":
			s.SIMD |= feature.ARMNEON
			s.ISA |= feature.ARMVFP | feature.ARMVFP2 | feature.ARMVFP3 | feature.ARMVFPd32
			s.System |= feature.ARMSysS32 | feature.ARMSysD32
		case "vfpv3":
			s.ISA |= feature.ARMVFP | feature.ARMVFP2 | feature.ARMVFP3
			s.System |= feature.ARMSysS32
		case "vfpv3d16":
			d16 = true
		case "vfpv4":
			s.ISA |= feature.ARMVFP3HP | feature.ARMVFP4
		case "idiva":
			s.ISA |= feature.ARMDiv
		case "crc32":
			s.ISA |= feature.ARMCRC32
		case "aes":
			s.ISA |= feature.ARMAES
		case "pmull":
			s.ISA |= feature.ARMPMULL
		case "sha1":
			s.ISA |= feature.ARMSHA1
		case "sha2":
			s.ISA |= feature.ARMSHA2
		}
	}
	if d16 {
		s.ISA &^= feature.ARMVFPd32
		s.System &^= feature.ARMSysD32
	}
	if s.ISA.Has(feature.ARMV6) {
		s.System |= feature.MisalignedAccess
	}
}

func armBriefName(u feature.Microarchitecture, isa feature.ISA) string {
	if u != feature.UarchUnknown {
		return u.Description() + " based"
	}
	switch {
	case isa.Has(feature.ARMV8):
		return "ARMv8-A compatible"
	case isa.Has(feature.ARMV7):
		return "ARMv7-A compatible"
	case isa.Has(feature.ARMV6K):
		return "ARMv6K compatible"
	case isa.Has(feature.ARMV6):
		return "ARMv6 compatible"
	case isa.Has(feature.ARMV5 | feature.ARMThumb | feature.ARMV5E | feature.ARMJazelle):
		return "ARMv5TEJ compatible"
	case isa.Has(feature.ARMV5 | feature.ARMThumb | feature.ARMV5E):
		return "ARMv5TE compatible"
	case isa.Has(feature.ARMV5 | feature.ARMThumb):
		return "ARMv5T compatible"
	case isa.Has(feature.ARMV5):
		return "ARMv5 compatible"
	case isa.Has(feature.ARMThumb2):
		return "ARMv4T compatible"
	default:
		return "ARMv4 compatible"
	}
}
