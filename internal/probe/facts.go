package probe

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/cpudispatch/internal/fs"
)

// X86Facts is what CPUID reports.
type X86Facts struct {
	VendorString string
	Brand        string
	Family       int
	Model        int
	Stepping     int
	// Features lists CPUID feature names. Vector features are only listed
	// when the OS saves the matching register state.
	Features     []string
	LogicalCores int
	// XCR0 holds the state components the OS saves on context switch. Zero
	// when the OS has not enabled XSAVE or the register could not be read.
	XCR0 uint64
}

// Has reports whether the named CPUID feature is listed.
func (x *X86Facts) Has(name string) bool {
	if x == nil {
		return false
	}
	for _, f := range x.Features {
		if f == name {
			return true
		}
	}
	return false
}

// ARMFacts combines the Main ID register fields exposed through cpuinfo with
// kernel hwcaps and probe outcomes.
type ARMFacts struct {
	Implementer  uint32
	Part         uint32
	Variant      uint32
	Revision     uint32
	Architecture uint32
	// ArchSuffix is the letter suffix of "CPU architecture", e.g. "TEJ".
	ArchSuffix string
	// AArch64 is set when the kernel reports a 64-bit architecture.
	AArch64 bool
	// Features is the union of cpuinfo "Features" tokens and hwcaps, using
	// the kernel's token names.
	Features []string
	// Probes records instruction-probe outcomes by token.
	Probes map[string]Result
}

// Has reports whether the kernel token is present.
func (a *ARMFacts) Has(token string) bool {
	if a == nil {
		return false
	}
	for _, f := range a.Features {
		if f == token {
			return true
		}
	}
	return false
}

// MIPSFacts is what the kernel reports for MIPS processors.
type MIPSFacts struct {
	CPUModel   string
	SystemType string
	ISA        []string
	ASEs       []string
}

// Facts is everything the platform probes found. Zero values mean unknown.
type Facts struct {
	GOOS   string
	GOARCH string
	// Cores is the number of logical processors the OS reports.
	Cores int
	// Brand is an OS-provided processor name, if any.
	Brand  string
	Caches []CacheEntry
	// CPUInfo holds the parsed cpuinfo file on Linux.
	CPUInfo CPUInfo
	// PerfCycleCounter is set when a hardware cycle counter can be opened
	// through perf events.
	PerfCycleCounter bool

	X86  *X86Facts
	ARM  *ARMFacts
	MIPS *MIPSFacts
}

// Options configures Collect.
type Options struct {
	FS          fs.FileSystem
	CPUInfoPath string
	SysCPUPath  string
	Logger      *slog.Logger
	// Prober confirms or discovers features by execution. Nil disables
	// instruction probing.
	Prober *Prober
}

func (o *Options) defaults() {
	if o.FS == nil {
		o.FS = fs.Default
	}
	if o.CPUInfoPath == "" {
		o.CPUInfoPath = DefaultCPUInfoPath
	}
	if o.SysCPUPath == "" {
		o.SysCPUPath = DefaultSysCPUPath
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}

// Collect runs the platform probes. Individual probe failures only leave the
// corresponding facts unset; the returned error is non-nil only when ctx ends
// first.
func Collect(ctx context.Context, opts Options) (*Facts, error) {
	opts.defaults()
	f := &Facts{GOOS: runtime.GOOS, GOARCH: runtime.GOARCH}

	var osFacts, archFacts Facts
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		collectOS(gctx, &opts, &osFacts)
		return gctx.Err()
	})
	g.Go(func() error {
		collectArch(gctx, &opts, &archFacts)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	f.Cores = osFacts.Cores
	f.Brand = osFacts.Brand
	f.Caches = osFacts.Caches
	f.CPUInfo = osFacts.CPUInfo
	f.PerfCycleCounter = osFacts.PerfCycleCounter
	f.X86 = archFacts.X86
	f.ARM = mergeARM(osFacts.ARM, archFacts.ARM)
	f.MIPS = osFacts.MIPS
	if len(f.Caches) == 0 {
		f.Caches = archFacts.Caches
	}
	if f.Brand == "" {
		f.Brand = archFacts.Brand
	}

	opts.Logger.DebugContext(ctx, "platform probes collected",
		"goos", f.GOOS,
		"goarch", f.GOARCH,
		"cores", f.Cores,
		"caches", len(f.Caches),
	)
	return f, nil
}

// mergeARM joins cpuinfo-derived facts with hwcap and probe facts. Probes
// only run when probing is enabled; a probe that executed adds its token, and
// one that faulted or could not run removes it.
func mergeARM(fromOS, fromArch *ARMFacts) *ARMFacts {
	if fromOS == nil && fromArch == nil {
		return nil
	}

	var out ARMFacts
	if fromOS != nil {
		out = *fromOS
		out.Features = slices.Clone(fromOS.Features)
	}
	if fromArch != nil {
		out.Features = appendMissing(out.Features, fromArch.Features...)
		out.AArch64 = out.AArch64 || fromArch.AArch64
		if out.Implementer == 0 {
			out.Implementer = fromArch.Implementer
		}
		out.Probes = fromArch.Probes
	}

	for token, r := range out.Probes {
		switch r {
		case Supported:
			out.Features = appendMissing(out.Features, token)
		default:
			out.Features = removeToken(out.Features, token)
		}
	}
	return &out
}

func appendMissing(list []string, tokens ...string) []string {
outer:
	for _, t := range tokens {
		for _, have := range list {
			if have == t {
				continue outer
			}
		}
		list = append(list, t)
	}
	return list
}

func removeToken(list []string, token string) []string {
	out := list[:0]
	for _, t := range list {
		if t != token {
			out = append(out, t)
		}
	}
	return out
}
