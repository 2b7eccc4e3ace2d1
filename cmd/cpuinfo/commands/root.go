package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/cpudispatch"
)

var cfgFile string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cpuinfo",
	Short: "Inspect processor capabilities and dispatch decisions",
	Long: `cpuinfo reports what the running processor can execute, which
implementation a dispatch table would select on it, and the timing and
energy counters it exposes.`,
	Version:      cpudispatch.Version().String(),
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log detection and probes to stderr")
	rootCmd.PersistentFlags().Bool("json", false, "print JSON instead of text")
	rootCmd.PersistentFlags().Bool("no-probe", false, "skip instruction probes")
	rootCmd.PersistentFlags().StringSlice("disable", nil, "feature identifiers to clear after detection")
	rootCmd.PersistentFlags().Duration("probe-timeout", 0, "timeout of a single instruction probe")

	// Bind flags to viper
	for _, name := range []string{"verbose", "json", "no-probe", "disable", "probe-timeout"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}

	// CPUDISPATCH_NO_PROBE, CPUDISPATCH_DISABLE, ...
	viper.SetEnvPrefix("CPUDISPATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
