package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/viper"

	"github.com/hupe1980/cpudispatch"
)

// detect runs detection with the options bound to flags, env and config.
func detect(ctx context.Context) (*cpudispatch.Capabilities, error) {
	// Env values arrive as one comma-separated element.
	var disabled []string
	for _, v := range viper.GetStringSlice("disable") {
		disabled = append(disabled, strings.Split(v, ",")...)
	}

	opts := []cpudispatch.Option{
		cpudispatch.WithInstructionProbing(!viper.GetBool("no-probe")),
		cpudispatch.WithDisabledFeatures(disabled...),
	}
	if viper.GetBool("verbose") {
		opts = append(opts, cpudispatch.WithLogger(cpudispatch.NewTextLogger(slog.LevelDebug)))
	}
	if d := viper.GetDuration("probe-timeout"); d > 0 {
		opts = append(opts, cpudispatch.WithProbeTimeout(d))
	}

	caps, err := cpudispatch.Detect(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to detect processor: %w", err)
	}
	return caps, nil
}

func writeJSON(w io.Writer, v any) error {
	b, err := gojson.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

// formatBytes renders a cache size.
func formatBytes(n uint32) string {
	switch {
	case n == 0:
		return "-"
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%d MiB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%d KiB", n>>10)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
