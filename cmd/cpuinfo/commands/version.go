package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/hupe1980/cpudispatch"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		v := cpudispatch.Version()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "cpudispatch v%d.%d.%d\n", v.Major, v.Minor, v.Patch)
		fmt.Fprintf(out, "Implementation: %s\n", v.Description)
		fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
		fmt.Fprintf(out, "Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
