package cpudispatch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/cpudispatch/feature"
)

// Logger wraps slog.Logger with cpudispatch-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithArchitecture adds an architecture field to the logger.
func (l *Logger) WithArchitecture(a feature.Architecture) *Logger {
	return &Logger{
		Logger: l.Logger.With("architecture", a.ID()),
	}
}

// WithOperation adds an operation field to the logger, e.g. the name of a
// dispatched function.
func (l *Logger) WithOperation(op string) *Logger {
	return &Logger{
		Logger: l.Logger.With("operation", op),
	}
}

// LogDetect logs the outcome of a capability detection.
func (l *Logger) LogDetect(ctx context.Context, c *Capabilities, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "capability detection failed",
			"duration", duration,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "capabilities detected",
		"architecture", c.Architecture().ID(),
		"vendor", c.Vendor().ID(),
		"microarchitecture", c.Microarchitecture().ID(),
		"cores", c.LogicalCoreCount(),
		"name", c.FullName(),
		"duration", duration,
	)
}

// LogResolve logs a dispatch resolution. won is false when another goroutine
// published the choice first.
func (l *Logger) LogResolve(ctx context.Context, op, entry string, won bool) {
	l.DebugContext(ctx, "dispatch resolved",
		"operation", op,
		"entry", entry,
		"published", won,
	)
}

// LogProbe logs an instruction probe outcome.
func (l *Logger) LogProbe(ctx context.Context, instruction, result string) {
	l.DebugContext(ctx, "instruction probed",
		"instruction", instruction,
		"result", result,
	)
}
