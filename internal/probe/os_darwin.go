//go:build darwin

package probe

import (
	"context"
	"strings"

	"golang.org/x/sys/unix"
)

func collectOS(ctx context.Context, opts *Options, f *Facts) {
	if n, err := unix.SysctlUint32("hw.logicalcpu"); err == nil {
		f.Cores = int(n)
	} else {
		opts.Logger.DebugContext(ctx, "hw.logicalcpu unavailable", "error", err)
	}
	if brand, err := unix.Sysctl("machdep.cpu.brand_string"); err == nil {
		f.Brand = strings.TrimSpace(brand)
	}

	line := sysctl64("hw.cachelinesize")
	add := func(level int, typ CacheType, name string) {
		if size := sysctl64(name); size > 0 {
			f.Caches = append(f.Caches, CacheEntry{Level: level, Type: typ, Size: size, LineSize: line})
		}
	}
	add(1, CacheData, "hw.l1dcachesize")
	add(1, CacheInstruction, "hw.l1icachesize")
	add(2, CacheUnified, "hw.l2cachesize")
	add(3, CacheUnified, "hw.l3cachesize")
}

func sysctl64(name string) uint32 {
	v, err := unix.SysctlUint64(name)
	if err != nil || v > uint64(^uint32(0)) {
		return 0
	}
	return uint32(v)
}
