//go:build linux

package probe

import (
	"context"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

func collectOS(ctx context.Context, opts *Options, f *Facts) {
	log := opts.Logger

	if n, err := CountCPUs(opts.FS, opts.SysCPUPath); err != nil {
		log.DebugContext(ctx, "sysfs processor count unavailable", "error", err)
	} else {
		f.Cores = n
	}
	if f.Cores == 0 {
		var set unix.CPUSet
		if err := unix.SchedGetaffinity(0, &set); err == nil {
			f.Cores = set.Count()
		}
	}

	info, err := ReadCPUInfo(opts.FS, opts.CPUInfoPath)
	if err != nil {
		log.DebugContext(ctx, "cpuinfo unavailable", "error", err)
	}
	f.CPUInfo = info

	switch runtime.GOARCH {
	case "arm", "arm64":
		f.ARM = ParseARMCPUInfo(info)
	case "mips", "mipsle", "mips64", "mips64le":
		f.MIPS = ParseMIPSCPUInfo(info)
	}

	if caches, err := ReadSysfsCaches(opts.FS, opts.SysCPUPath); err != nil {
		log.DebugContext(ctx, "sysfs cache descriptors unavailable", "error", err)
	} else {
		f.Caches = caches
	}

	if fd, err := OpenCycleCounter(); err == nil {
		f.PerfCycleCounter = true
		_ = unix.Close(fd)
	}
}

// OpenCycleCounter opens a user-space CPU-cycle perf event for the calling
// thread on any CPU. The caller owns the returned descriptor.
func OpenCycleCounter() (int, error) {
	attr := unix.PerfEventAttr{
		Type:   unix.PERF_TYPE_HARDWARE,
		Size:   uint32(unsafe.Sizeof(unix.PerfEventAttr{})),
		Config: unix.PERF_COUNT_HW_CPU_CYCLES,
		Bits:   unix.PerfBitExcludeKernel | unix.PerfBitExcludeHv,
	}
	return unix.PerfEventOpen(&attr, 0, -1, -1, unix.PERF_FLAG_FD_CLOEXEC)
}
