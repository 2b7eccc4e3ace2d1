//go:build !linux && !darwin

package probe

import (
	"context"
	"runtime"
)

func collectOS(_ context.Context, _ *Options, f *Facts) {
	f.Cores = runtime.NumCPU()
}
