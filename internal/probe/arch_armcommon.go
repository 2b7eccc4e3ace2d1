//go:build arm || arm64

package probe

import (
	"context"
	"runtime"
)

func collectArch(ctx context.Context, opts *Options, f *Facts) {
	a := &ARMFacts{}
	if runtime.GOARCH == "arm64" {
		a.AArch64 = true
		a.Features = arm64HWCaps()
		a.Probes = probeARM64(ctx, opts.Prober)
	} else {
		a.Features = arm32HWCaps()
	}
	if runtime.GOOS == "darwin" {
		a.Implementer = 'a'
	}
	f.ARM = a
}
