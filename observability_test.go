package cpudispatch

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cpudispatch/feature"
	"github.com/hupe1980/cpudispatch/internal/fs"
)

func TestBasicMetricsCollector(t *testing.T) {
	var m BasicMetricsCollector

	m.RecordDetect(2*time.Millisecond, nil)
	m.RecordDetect(4*time.Millisecond, errors.New("boom"))
	m.RecordProbe("sdot", "supported")
	m.RecordProbe("fmlal", "unsupported")
	m.RecordProbe("bfdot", "unavailable")
	m.RecordResolve("sum", "avx2", true)
	m.RecordResolve("sum", "avx2", false)
	m.RecordEnergySample("package-power", 12.5, nil)
	m.RecordEnergySample("dram-power", 0, ErrAccessDenied)

	s := m.GetStats()
	assert.Equal(t, BasicMetricsStats{
		DetectCount:      2,
		DetectErrors:     1,
		DetectAvgNanos:   int64(3 * time.Millisecond),
		ProbeCount:       3,
		ProbeSupported:   1,
		ProbeUnsupported: 1,
		ResolveCount:     2,
		ResolveWins:      1,
		EnergySamples:    2,
		EnergyErrors:     1,
	}, s)

	var empty BasicMetricsCollector
	assert.Zero(t, empty.GetStats().DetectAvgNanos)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})).
		WithArchitecture(feature.ArchX86).
		WithOperation("sum")

	ctx := context.Background()
	l.LogResolve(ctx, "sum", "avx2", true)
	l.LogProbe(ctx, "sdot", "supported")
	l.LogDetect(ctx, nil, time.Millisecond, errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "architecture=x86")
	assert.Contains(t, out, "operation=sum")
	assert.Contains(t, out, "entry=avx2")
	assert.Contains(t, out, "published=true")
	assert.Contains(t, out, "instruction=sdot")
	assert.Contains(t, out, "capability detection failed")
}

func TestLoggerDetectSummary(t *testing.T) {
	var buf bytes.Buffer
	caps, err := Detect(context.Background(),
		WithLogger(NewLogger(slog.NewJSONHandler(&buf, nil))),
		withFileSystem(fs.NewMemFS()),
		WithInstructionProbing(false),
	)
	require.NoError(t, err)
	require.NotNil(t, caps)
	assert.Contains(t, buf.String(), `"msg":"capabilities detected"`)
}

func TestWithLoggerNil(t *testing.T) {
	o := applyOptions([]Option{WithLogger(nil)})
	require.NotNil(t, o.logger)
	assert.NotPanics(t, func() { o.logger.LogProbe(context.Background(), "nop", "supported") })
}
