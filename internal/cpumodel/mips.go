package cpumodel

import (
	"strings"

	"github.com/hupe1980/cpudispatch/feature"
	"github.com/hupe1980/cpudispatch/internal/probe"
)

type ingenicSoC struct {
	name   string
	l1, l2 uint32
}

// Ingenic SoCs by "system type". JZ4732 is sold as a JZ4740 variant.
var ingenicSoCs = map[string]ingenicSoC{
	"JZ4720":  {"Ingenic JZ4720", 16 << 10, 0},
	"JZ4725B": {"Ingenic JZ4725B", 16 << 10, 0},
	"JZ4730":  {"Ingenic JZ4730", 16 << 10, 0},
	"JZ4732":  {"Ingenic JZ4740", 16 << 10, 0},
	"JZ4740":  {"Ingenic JZ4740", 16 << 10, 0},
	"JZ4750":  {"Ingenic JZ4750", 16 << 10, 0},
	"JZ4755":  {"Ingenic JZ4755", 16 << 10, 0},
	"JZ4760":  {"Ingenic JZ4760", 16 << 10, 0},
	"JZ4770":  {"Ingenic JZ4770", 16 << 10, 256 << 10},
	"JZ4780":  {"Ingenic JZ4780", 32 << 10, 512 << 10},
}

var mipsISATokens = map[string]feature.ISA{
	"mips1":    feature.MIPSI,
	"mips2":    feature.MIPSII,
	"mips3":    feature.MIPSIII,
	"mips4":    feature.MIPSIV,
	"mips5":    feature.MIPSV,
	"mips32r1": feature.MIPSR1,
	"mips32r2": feature.MIPSR2,
	"mips64r1": feature.MIPSR1,
	"mips64r2": feature.MIPSR2,
}

// MIPSMicroarchitecture decodes the "system type" and "cpu model" fields.
func MIPSMicroarchitecture(systemType, cpuModel string) (feature.Vendor, feature.Microarchitecture) {
	if _, ok := ingenicSoCs[systemType]; ok {
		return feature.VendorIngenic, feature.UarchXBurst
	}
	switch {
	case strings.HasPrefix(cpuModel, "Ingenic JZRISC"):
		return feature.VendorIngenic, feature.UarchXBurst
	case strings.HasPrefix(cpuModel, "MIPS 24K"):
		return feature.VendorMIPS, feature.UarchMIPS24K
	case strings.HasPrefix(cpuModel, "MIPS 34K"):
		return feature.VendorMIPS, feature.UarchMIPS34K
	case strings.HasPrefix(cpuModel, "MIPS 74K"):
		return feature.VendorMIPS, feature.UarchMIPS74K
	}
	return feature.VendorUnknown, feature.UarchUnknown
}

func decodeMIPS(m *Model, f *probe.Facts) {
	mi := f.MIPS
	if mi == nil {
		mi = &probe.MIPSFacts{}
	}
	s := &m.Set
	s.Vendor, s.Microarchitecture = MIPSMicroarchitecture(mi.SystemType, mi.CPUModel)

	for _, token := range mi.ISA {
		s.ISA |= mipsISATokens[token]
	}
	if strings.Contains(mi.CPUModel, "FPU") {
		s.ISA |= feature.MIPSFPU
	}
	for _, ase := range mi.ASEs {
		switch ase {
		case "mips16":
			s.ISA |= feature.MIPSMIPS16
		case "micromips":
			s.ISA |= feature.MIPSMicroMIPS
		case "smartmips":
			s.ISA |= feature.MIPSSmartMIPS
		case "mt":
			s.ISA |= feature.MIPSMT
		case "vz":
			s.ISA |= feature.MIPSVZ
		case "mdmx":
			s.SIMD |= feature.MIPSMDMX
		case "mips3d":
			s.SIMD |= feature.MIPSMIPS3D | feature.MIPSPairedSingle
		case "dsp":
			s.SIMD |= feature.MIPSDSP
		case "dsp2":
			s.SIMD |= feature.MIPSDSP | feature.MIPSDSP2
		case "mxu":
			s.SIMD |= feature.MIPSMXU
		}
	}

	// Cache descriptors are not exported by the kernel; use the documented
	// sizes when sysfs gave nothing.
	if m.Caches == (Caches{}) {
		m.Caches = mipsCaches(s.Microarchitecture, mi.SystemType)
	}

	if soc, ok := ingenicSoCs[mi.SystemType]; ok {
		m.BriefName = soc.name
	} else if s.ISA.Has(feature.MIPSR2) {
		m.BriefName = "MIPS32 R2 compatible"
	} else {
		m.BriefName = "MIPS32 R1 compatible"
	}
	m.FullName = m.BriefName
}

func mipsCaches(u feature.Microarchitecture, systemType string) Caches {
	switch u {
	case feature.UarchMIPS24K, feature.UarchMIPS34K, feature.UarchMIPS74K:
		l1 := Cache{Size: 64 << 10, LineSize: 32, Associativity: 4}
		return Caches{L1D: l1, L1I: l1}
	}
	soc, ok := ingenicSoCs[systemType]
	if !ok {
		return Caches{}
	}
	c := Caches{L1D: Cache{Size: soc.l1}, L1I: Cache{Size: soc.l1}}
	if soc.l2 != 0 {
		c.L2 = Cache{Size: soc.l2, Unified: true}
	}
	return c
}
