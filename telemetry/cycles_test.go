package telemetry

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cpudispatch/feature"
	"github.com/hupe1980/cpudispatch/status"
)

func TestReleaseCycleCounterInvalidState(t *testing.T) {
	_, err := ReleaseCycleCounter(nil)
	assert.ErrorIs(t, err, status.ErrNullArgument)

	var c CycleCounter
	assert.False(t, c.Running())
	_, err = ReleaseCycleCounter(&c)
	assert.ErrorIs(t, err, status.ErrInvalidState)
}

func TestCycleCounterWithoutFeature(t *testing.T) {
	c, err := AcquireCycleCounter(feature.Set{})
	require.Error(t, err)
	assert.False(t, c.Running())

	want := status.UnsupportedSoftware
	if runtime.GOARCH == "386" || runtime.GOARCH == "amd64" {
		want = status.UnsupportedHardware
	}
	assert.Equal(t, want, status.Of(err))

	_, err = ReleaseCycleCounter(&c)
	assert.ErrorIs(t, err, status.ErrInvalidState)
}

func TestCycleCounterTSC(t *testing.T) {
	if runtime.GOARCH != "386" && runtime.GOARCH != "amd64" {
		t.Skip("time-stamp counter is x86 only")
	}
	if !haveSerializedTSC {
		t.Skip("needs the serialized RDTSC read")
	}

	set := feature.Set{System: feature.CycleCounter | feature.CycleCounter64Bit}
	c, err := AcquireCycleCounter(set)
	require.NoError(t, err)
	require.True(t, c.Running())

	sum := 0
	for i := range 10000 {
		sum += i
	}
	_ = sum

	cycles, err := ReleaseCycleCounter(&c)
	require.NoError(t, err)
	assert.Positive(t, cycles)
	assert.False(t, c.Running())

	// Double release is rejected.
	_, err = ReleaseCycleCounter(&c)
	assert.ErrorIs(t, err, status.ErrInvalidState)
}

func TestCycleCounterCopyReleasedOnce(t *testing.T) {
	if runtime.GOARCH != "386" && runtime.GOARCH != "amd64" {
		t.Skip("time-stamp counter is x86 only")
	}

	set := feature.Set{
		ISA:    feature.X86Rdtscp,
		System: feature.CycleCounter | feature.CycleCounter64Bit,
	}
	c, err := AcquireCycleCounter(set)
	if status.Of(err) == status.UnsupportedHardware {
		t.Skip("no usable time-stamp counter read in this build")
	}
	require.NoError(t, err)

	dup := c
	require.True(t, dup.Running())

	_, err = ReleaseCycleCounter(&c)
	require.NoError(t, err)
	assert.False(t, dup.Running())

	_, err = ReleaseCycleCounter(&dup)
	assert.ErrorIs(t, err, status.ErrInvalidState)
}

func TestReleaseCyclesRejectsUntaggedState(t *testing.T) {
	_, err := releaseCycles(CycleCounter{state: 12345})
	assert.ErrorIs(t, err, status.ErrInvalidState)
}
