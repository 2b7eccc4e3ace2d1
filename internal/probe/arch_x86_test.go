//go:build 386 || amd64

package probe

import (
	"testing"

	"github.com/klauspost/cpuid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectArchX86(t *testing.T) {
	var f Facts
	opts := Options{}
	opts.defaults()
	collectArch(t.Context(), &opts, &f)

	require.NotNil(t, f.X86)
	// CPUID thread counts never stand in for the OS count.
	assert.Zero(t, f.Cores)

	if !haveXGETBV || !cpuid.CPU.Supports(cpuid.OSXSAVE) {
		assert.Zero(t, f.X86.XCR0)
		return
	}
	// XCR0 bit 0, x87 state, cannot be cleared.
	assert.Equal(t, uint64(1), f.X86.XCR0&1)
}
