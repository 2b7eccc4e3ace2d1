package probe

import (
	"strconv"
	"strings"

	"golang.org/x/sys/cpu"
)

// ParseARMCPUInfo extracts the Main ID register fields and feature tokens
// from an ARM cpuinfo file. Malformed fields are left zero.
func ParseARMCPUInfo(info CPUInfo) *ARMFacts {
	a := &ARMFacts{}

	if v, ok := info.Value("CPU implementer"); ok {
		a.Implementer = parseHexField(v, 2)
	} else if v, ok := info.Value("CPU implementor"); ok {
		a.Implementer = parseHexField(v, 2)
	}
	if v, ok := info.Value("CPU part"); ok {
		a.Part = parseHexField(v, 3)
	}
	if v, ok := info.Value("CPU variant"); ok {
		a.Variant = parseHexField(v, 1)
	}
	if v, ok := info.Value("CPU revision"); ok && isDecimal(v) {
		n, _ := strconv.ParseUint(v, 10, 32)
		a.Revision = uint32(n)
	}
	if v, ok := info.Value("CPU architecture"); ok {
		a.Architecture, a.ArchSuffix, a.AArch64 = parseARMArchitecture(v)
	}

	// Both "Features" (arm, arm64) and older "flags" spellings are accepted.
	for _, key := range []string{"Features", "flags"} {
		if v, ok := info.Value(key); ok {
			a.Features = appendMissing(a.Features, strings.Fields(v)...)
		}
	}
	return a
}

// parseHexField decodes "0x" followed by one to maxDigits hex digits.
func parseHexField(v string, maxDigits int) uint32 {
	digits, ok := strings.CutPrefix(v, "0x")
	if !ok || len(digits) == 0 || len(digits) > maxDigits {
		return 0
	}
	n, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}

// parseARMArchitecture splits values like "7", "5TEJ" or "AArch64".
func parseARMArchitecture(v string) (version uint32, suffix string, aarch64 bool) {
	if strings.EqualFold(v, "AArch64") {
		return 8, "", true
	}
	i := 0
	for i < len(v) && v[i] >= '0' && v[i] <= '9' {
		version = version*10 + uint32(v[i]-'0')
		i++
	}
	for _, c := range v[i:] {
		if c == 'E' || c == 'J' || c == 'T' {
			suffix += string(c)
		}
	}
	return version, suffix, false
}

type hwcap struct {
	has   bool
	token string
}

func tokens(caps []hwcap) []string {
	var out []string
	for _, c := range caps {
		if c.has {
			out = append(out, c.token)
		}
	}
	return out
}

// arm64HWCaps returns the hwcaps golang.org/x/sys/cpu saw, named the way
// the kernel lists them in cpuinfo.
func arm64HWCaps() []string {
	return tokens([]hwcap{
		{cpu.ARM64.HasFP, "fp"},
		{cpu.ARM64.HasASIMD, "asimd"},
		{cpu.ARM64.HasEVTSTRM, "evtstrm"},
		{cpu.ARM64.HasAES, "aes"},
		{cpu.ARM64.HasPMULL, "pmull"},
		{cpu.ARM64.HasSHA1, "sha1"},
		{cpu.ARM64.HasSHA2, "sha2"},
		{cpu.ARM64.HasCRC32, "crc32"},
		{cpu.ARM64.HasATOMICS, "atomics"},
		{cpu.ARM64.HasFPHP, "fphp"},
		{cpu.ARM64.HasASIMDHP, "asimdhp"},
		{cpu.ARM64.HasCPUID, "cpuid"},
		{cpu.ARM64.HasASIMDRDM, "asimdrdm"},
		{cpu.ARM64.HasJSCVT, "jscvt"},
		{cpu.ARM64.HasFCMA, "fcma"},
		{cpu.ARM64.HasLRCPC, "lrcpc"},
		{cpu.ARM64.HasDCPOP, "dcpop"},
		{cpu.ARM64.HasSHA3, "sha3"},
		{cpu.ARM64.HasSM3, "sm3"},
		{cpu.ARM64.HasSM4, "sm4"},
		{cpu.ARM64.HasASIMDDP, "asimddp"},
		{cpu.ARM64.HasSHA512, "sha512"},
		{cpu.ARM64.HasSVE, "sve"},
		{cpu.ARM64.HasSVE2, "sve2"},
		{cpu.ARM64.HasASIMDFHM, "asimdfhm"},
	})
}

// arm32HWCaps is arm64HWCaps for 32-bit ARM.
func arm32HWCaps() []string {
	return tokens([]hwcap{
		{cpu.ARM.HasSWP, "swp"},
		{cpu.ARM.HasHALF, "half"},
		{cpu.ARM.HasTHUMB, "thumb"},
		{cpu.ARM.Has26BIT, "26bit"},
		{cpu.ARM.HasFASTMUL, "fastmult"},
		{cpu.ARM.HasFPA, "fpa"},
		{cpu.ARM.HasVFP, "vfp"},
		{cpu.ARM.HasEDSP, "edsp"},
		{cpu.ARM.HasJAVA, "java"},
		{cpu.ARM.HasIWMMXT, "iwmmxt"},
		{cpu.ARM.HasCRUNCH, "crunch"},
		{cpu.ARM.HasTHUMBEE, "thumbee"},
		{cpu.ARM.HasNEON, "neon"},
		{cpu.ARM.HasVFPv3, "vfpv3"},
		{cpu.ARM.HasVFPv3D16, "vfpv3d16"},
		{cpu.ARM.HasTLS, "tls"},
		{cpu.ARM.HasVFPv4, "vfpv4"},
		{cpu.ARM.HasIDIVA, "idiva"},
		{cpu.ARM.HasIDIVT, "idivt"},
		{cpu.ARM.HasLPAE, "lpae"},
		{cpu.ARM.HasEVTSTRM, "evtstrm"},
		{cpu.ARM.HasAES, "aes"},
		{cpu.ARM.HasPMULL, "pmull"},
		{cpu.ARM.HasSHA1, "sha1"},
		{cpu.ARM.HasSHA2, "sha2"},
		{cpu.ARM.HasCRC32, "crc32"},
	})
}
