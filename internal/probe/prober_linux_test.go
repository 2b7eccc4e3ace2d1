//go:build linux && (386 || amd64 || arm64)

package probe

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cpudispatch/internal/resource"
)

func TestProberSupportedAndUnsupported(t *testing.T) {
	rc := resource.NewController(resource.Config{MaxConcurrentProbes: 2})
	p := NewProber(ProberOptions{Resources: rc})
	require.True(t, p.Enabled())

	ctx := context.Background()
	assert.Equal(t, Supported, p.Probe(ctx, InstructionNop))
	assert.Equal(t, Unsupported, p.Probe(ctx, InstructionIllegal))
	assert.Zero(t, rc.ProbesInFlight())

	// Cached results do not start another helper.
	p.opts.Executable = "/nonexistent/cpudispatch-helper"
	assert.Equal(t, Supported, p.Probe(ctx, InstructionNop))
	assert.Equal(t, Unsupported, p.Probe(ctx, InstructionIllegal))
}

func TestRunHelperInProcess(t *testing.T) {
	assert.Equal(t, 0, runHelper(hex.EncodeToString(InstructionNop.Code)))
}
