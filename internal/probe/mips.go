package probe

import "strings"

// ParseMIPSCPUInfo extracts the processor model, SoC and extension lists
// from a MIPS cpuinfo file.
func ParseMIPSCPUInfo(info CPUInfo) *MIPSFacts {
	m := &MIPSFacts{}
	m.CPUModel, _ = info.Value("cpu model")
	m.SystemType, _ = info.Value("system type")
	if v, ok := info.Value("isa"); ok {
		m.ISA = strings.Fields(v)
	}
	if v, ok := info.Value("ASEs implemented"); ok {
		m.ASEs = strings.Fields(v)
	}
	return m
}
