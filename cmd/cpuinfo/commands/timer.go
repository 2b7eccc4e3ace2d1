package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/cpudispatch/telemetry"
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Show the system timer and cycle counter",
	Args:  cobra.NoArgs,
	RunE:  runTimer,
}

func init() {
	rootCmd.AddCommand(timerCmd)
}

type timerReport struct {
	Ticks       uint64 `json:"ticks"`
	Frequency   uint64 `json:"frequency"`
	Accuracy    uint64 `json:"accuracy"`
	Cycles      uint64 `json:"cycles,omitempty"`
	CyclesError string `json:"cycles_error,omitempty"`
}

func runTimer(cmd *cobra.Command, args []string) error {
	caps, err := detect(cmd.Context())
	if err != nil {
		return err
	}

	var r timerReport
	if r.Ticks, err = telemetry.TimerTicks(); err != nil {
		return err
	}
	if r.Frequency, err = telemetry.TimerFrequency(); err != nil {
		return err
	}
	if r.Accuracy, err = telemetry.TimerAccuracy(); err != nil {
		return err
	}

	// Cycles spent measuring the timer accuracy once more.
	c, err := telemetry.AcquireCycleCounter(caps.Features())
	if err == nil {
		_, _ = telemetry.TimerAccuracy()
		r.Cycles, err = telemetry.ReleaseCycleCounter(&c)
	}
	if err != nil {
		r.CyclesError = err.Error()
	}

	out := cmd.OutOrStdout()
	if viper.GetBool("json") {
		return writeJSON(out, r)
	}
	fmt.Fprintf(out, "Ticks: %d\n", r.Ticks)
	fmt.Fprintf(out, "Frequency: %d Hz\n", r.Frequency)
	fmt.Fprintf(out, "Accuracy: %d ticks\n", r.Accuracy)
	if r.CyclesError != "" {
		fmt.Fprintf(out, "Cycle counter: %s\n", r.CyclesError)
	} else {
		fmt.Fprintf(out, "Cycle counter: %d cycles\n", r.Cycles)
	}
	return nil
}
