//go:build !(386 || amd64 || arm || arm64)

package probe

import "context"

func collectArch(context.Context, *Options, *Facts) {}
