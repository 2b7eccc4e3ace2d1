//go:build (arm || arm64) && !(unix && arm64)

package probe

import "context"

func probeARM64(context.Context, *Prober) map[string]Result { return nil }
