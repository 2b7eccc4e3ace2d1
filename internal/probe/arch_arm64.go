//go:build unix && arm64

package probe

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// probeARM64 runs the instructions whose hwcap reports are unreliable on
// some kernels and virtual machines.
func probeARM64(ctx context.Context, p *Prober) map[string]Result {
	if !p.Enabled() {
		return nil
	}
	checks := []struct {
		token string
		ins   Instruction
	}{
		{"asimddp", InstructionSDOT},
		{"asimdfhm", InstructionFMLAL},
		{"bf16", InstructionBFDOT},
		{"sve", InstructionRDVL},
	}

	var (
		mu  sync.Mutex
		out = make(map[string]Result, len(checks))
		g   errgroup.Group
	)
	for _, c := range checks {
		g.Go(func() error {
			r := p.Probe(ctx, c.ins)
			mu.Lock()
			out[c.token] = r
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}
