//go:build 386 || amd64

package probe

import (
	"context"
	"strings"

	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sys/cpu"
)

func collectArch(_ context.Context, _ *Options, f *Facts) {
	c := &cpuid.CPU
	f.X86 = &X86Facts{
		VendorString: c.VendorString,
		Brand:        strings.TrimSpace(c.BrandName),
		Family:       c.Family,
		Model:        c.Model,
		Stepping:     c.Stepping,
		Features:     crossCheck(c.FeatureSet()),
		LogicalCores: c.LogicalCores,
		XCR0:         readXCR0(c),
	}
	f.Caches = cpuidCaches(c)
}

// readXCR0 returns the OS-enabled state components, or 0 when the OS has not
// enabled XGETBV.
func readXCR0(c *cpuid.CPUInfo) uint64 {
	if !haveXGETBV || !c.Supports(cpuid.OSXSAVE) {
		return 0
	}
	lo, hi := xgetbv(0)
	return uint64(hi)<<32 | uint64(lo)
}

// crossCheck drops vector features that golang.org/x/sys/cpu, which applies
// its own OS-support test, does not confirm.
func crossCheck(features []string) []string {
	deny := map[string]bool{
		"AVX":     !cpu.X86.HasAVX,
		"AVX2":    !cpu.X86.HasAVX2,
		"AVX512F": !cpu.X86.HasAVX512F,
	}
	out := features[:0]
	for _, f := range features {
		if !deny[f] {
			out = append(out, f)
		}
	}
	return out
}

func cpuidCaches(c *cpuid.CPUInfo) []CacheEntry {
	line := uint32(max(c.CacheLine, 0))
	var out []CacheEntry
	add := func(level int, typ CacheType, size int) {
		if size > 0 {
			out = append(out, CacheEntry{Level: level, Type: typ, Size: uint32(size), LineSize: line})
		}
	}
	add(1, CacheData, c.Cache.L1D)
	add(1, CacheInstruction, c.Cache.L1I)
	add(2, CacheUnified, c.Cache.L2)
	add(3, CacheUnified, c.Cache.L3)
	return out
}
