package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/cpudispatch"
	"github.com/hupe1980/cpudispatch/telemetry"
)

var energyCmd = &cobra.Command{
	Use:   "energy [KIND...]",
	Short: "Sample RAPL energy and power counters",
	Long: `Sample the running average power limit counters exposed through the MSR
driver (/dev/cpu/N/msr, usually root only) until interrupted or until
--count samples per kind have been taken.

Kinds: package-energy, pp0-energy, pp1-energy, dram-energy, package-power,
pp0-power, pp1-power, dram-power. The default is package-power.`,
	RunE: runEnergy,
}

func init() {
	energyCmd.Flags().Duration("interval", telemetry.DefaultSampleInterval, "measurement window")
	energyCmd.Flags().Int("count", 0, "samples per kind, 0 for unlimited")
	_ = viper.BindPFlag("interval", energyCmd.Flags().Lookup("interval"))
	_ = viper.BindPFlag("count", energyCmd.Flags().Lookup("count"))
	rootCmd.AddCommand(energyCmd)
}

func parseEnergyKinds(args []string) ([]telemetry.EnergyKind, error) {
	if len(args) == 0 {
		return []telemetry.EnergyKind{telemetry.RaplPackagePower}, nil
	}
	kinds := make([]telemetry.EnergyKind, 0, len(args))
	for _, a := range args {
		k, ok := telemetry.ParseEnergyKind(strings.ToLower(a))
		if !ok {
			return nil, fmt.Errorf("unknown energy kind %q: %w", a, cpudispatch.ErrInvalidArgument)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

type energySample struct {
	Kind     string  `json:"kind"`
	Value    float64 `json:"value"`
	Unit     string  `json:"unit"`
	Interval string  `json:"interval"`
}

func unit(k telemetry.EnergyKind) string {
	if k.IsPower() {
		return "W"
	}
	return "J"
}

func runEnergy(cmd *cobra.Command, args []string) error {
	kinds, err := parseEnergyKinds(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	caps, err := detect(ctx)
	if err != nil {
		return err
	}

	monitor := telemetry.NewPowerMonitor(caps.Features(), kinds,
		telemetry.WithSampleInterval(viper.GetDuration("interval")),
		telemetry.WithSampleRecorder(caps),
	)

	samples := make(chan telemetry.Sample, len(kinds))
	done := make(chan error, 1)
	go func() { done <- monitor.Run(ctx, samples) }()

	out := cmd.OutOrStdout()
	jsonOut := viper.GetBool("json")
	limit := viper.GetInt("count") * len(kinds)
	seen := 0
	for s := range samples {
		if s.Err != nil {
			continue
		}
		if jsonOut {
			err = writeJSON(out, energySample{
				Kind:     s.Kind.String(),
				Value:    s.Value,
				Unit:     unit(s.Kind),
				Interval: s.Interval.String(),
			})
		} else {
			_, err = fmt.Fprintf(out, "%-15s %12.4f %s over %s\n", s.Kind, s.Value, unit(s.Kind), s.Interval)
		}
		seen++
		if err != nil || (limit > 0 && seen >= limit) {
			cancel()
			break
		}
	}
	for range samples {
	}
	if runErr := <-done; runErr != nil {
		return runErr
	}
	return err
}
