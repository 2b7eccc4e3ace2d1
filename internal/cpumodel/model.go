package cpumodel

import (
	"github.com/hupe1980/cpudispatch/feature"
	"github.com/hupe1980/cpudispatch/internal/probe"
)

// Model is the decoded view of one machine.
type Model struct {
	Set       feature.Set
	Cores     int
	Caches    Caches
	BriefName string
	FullName  string
}

// Build decodes facts. A nil record yields the architecture of the running
// binary and nothing else.
func Build(f *probe.Facts) *Model {
	if f == nil {
		f = &probe.Facts{}
	}

	m := &Model{Cores: f.Cores}
	m.Set.Architecture = feature.ArchitectureForGOARCH(f.GOARCH)
	m.Caches = cachesFromEntries(f.Caches)

	switch m.Set.Architecture {
	case feature.ArchX86:
		decodeX86(m, f)
	case feature.ArchARM:
		decodeARM(m, f)
	case feature.ArchMIPS:
		decodeMIPS(m, f)
	}

	if is64Bit(f.GOARCH) {
		m.Set.System |= feature.AddressSpace64Bit | feature.GPRegisters64Bit
	}
	if f.Cores == 1 {
		m.Set.System |= feature.SingleThreaded
	}
	if f.PerfCycleCounter {
		m.Set.System |= feature.CycleCounter | feature.CycleCounter64Bit
	}

	if m.FullName == "" {
		m.FullName = fullName(m.Set.Vendor, m.BriefName)
	}
	return m
}

func is64Bit(goarch string) bool {
	switch goarch {
	case "amd64", "arm64", "mips64", "mips64le", "ppc64", "ppc64le", "riscv64", "s390x", "loong64", "sparc64":
		return true
	}
	return false
}

// fullName prefixes brief with the vendor description when the vendor is known.
func fullName(v feature.Vendor, brief string) string {
	if v == feature.VendorUnknown || !v.Defined() || brief == "" {
		return brief
	}
	return v.Description() + " " + brief
}
