package feature

import "fmt"

// Architecture identifies a CPU architecture family.
type Architecture uint32

const (
	ArchUnknown Architecture = iota
	ArchX86
	ArchARM
	ArchMIPS
	ArchPowerPC
	ArchIA64
	ArchSPARC
)

var archNames = [...]string{
	ArchUnknown: "Unknown",
	ArchX86:     "x86",
	ArchARM:     "ARM",
	ArchMIPS:    "MIPS",
	ArchPowerPC: "PowerPC",
	ArchIA64:    "IA64",
	ArchSPARC:   "SPARC",
}

// Defined reports whether a has an assigned meaning.
func (a Architecture) Defined() bool { return int(a) < len(archNames) }

// ID returns the short identifier of a, or "" if a is undefined.
func (a Architecture) ID() string {
	if !a.Defined() {
		return ""
	}
	return archNames[a]
}

// Description returns the human-readable name of a, or "" if a is undefined.
// Architecture descriptions and identifiers coincide.
func (a Architecture) Description() string { return a.ID() }

func (a Architecture) String() string {
	if a.Defined() {
		return archNames[a]
	}
	return fmt.Sprintf("Architecture(%d)", uint32(a))
}

// ArchitectureForGOARCH maps a Go GOARCH value onto an Architecture.
func ArchitectureForGOARCH(goarch string) Architecture {
	switch goarch {
	case "386", "amd64", "amd64p32":
		return ArchX86
	case "arm", "armbe", "arm64", "arm64be":
		return ArchARM
	case "mips", "mipsle", "mips64", "mips64le", "mips64p32", "mips64p32le":
		return ArchMIPS
	case "ppc", "ppc64", "ppc64le":
		return ArchPowerPC
	case "sparc", "sparc64":
		return ArchSPARC
	default:
		return ArchUnknown
	}
}
