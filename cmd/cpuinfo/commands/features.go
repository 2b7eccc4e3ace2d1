package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/cpudispatch"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Show the detected processor and its features",
	Long: `Display the architecture, vendor, microarchitecture, cache hierarchy and
every detected instruction set, vector extension and system feature.`,
	Args: cobra.NoArgs,
	RunE: runFeatures,
}

func init() {
	rootCmd.AddCommand(featuresCmd)
}

type cacheReport struct {
	Level       int    `json:"level"`
	Data        uint32 `json:"data"`
	Instruction uint32 `json:"instruction"`
}

type featuresReport struct {
	Architecture      string        `json:"architecture"`
	Vendor            string        `json:"vendor"`
	Microarchitecture string        `json:"microarchitecture"`
	BriefName         string        `json:"brief_name"`
	FullName          string        `json:"full_name"`
	LogicalCores      int           `json:"logical_cores"`
	Caches            []cacheReport `json:"caches"`
	ISA               []string      `json:"isa"`
	SIMD              []string      `json:"simd"`
	System            []string      `json:"system"`
}

func newFeaturesReport(caps *cpudispatch.Capabilities) featuresReport {
	isa, simd, sys := caps.Features().Names()
	r := featuresReport{
		Architecture:      caps.Architecture().ID(),
		Vendor:            caps.Vendor().Description(),
		Microarchitecture: caps.Microarchitecture().Description(),
		BriefName:         caps.BriefName(),
		FullName:          caps.FullName(),
		LogicalCores:      caps.LogicalCoreCount(),
		ISA:               isa,
		SIMD:              simd,
		System:            sys,
	}
	for level := 0; level <= 3; level++ {
		d, i := caps.DataCacheSize(level), caps.InstructionCacheSize(level)
		if d == 0 && i == 0 {
			continue
		}
		r.Caches = append(r.Caches, cacheReport{Level: level, Data: d, Instruction: i})
	}
	return r
}

func runFeatures(cmd *cobra.Command, args []string) error {
	caps, err := detect(cmd.Context())
	if err != nil {
		return err
	}

	r := newFeaturesReport(caps)
	out := cmd.OutOrStdout()
	if viper.GetBool("json") {
		return writeJSON(out, r)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Architecture:\t%s\n", r.Architecture)
	fmt.Fprintf(w, "Vendor:\t%s\n", r.Vendor)
	fmt.Fprintf(w, "Microarchitecture:\t%s\n", r.Microarchitecture)
	fmt.Fprintf(w, "Name:\t%s\n", r.FullName)
	fmt.Fprintf(w, "Logical cores:\t%d\n", r.LogicalCores)
	if err := w.Flush(); err != nil {
		return err
	}

	if len(r.Caches) > 0 {
		fmt.Fprintln(out)
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "LEVEL\tDATA\tINSTRUCTION")
		fmt.Fprintln(w, "-----\t----\t-----------")
		for _, c := range r.Caches {
			fmt.Fprintf(w, "L%d\t%s\t%s\n", c.Level, formatBytes(c.Data), formatBytes(c.Instruction))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(out)
	printNames(out, "ISA", r.ISA)
	printNames(out, "SIMD", r.SIMD)
	printNames(out, "System", r.System)
	return nil
}

func printNames(out io.Writer, title string, names []string) {
	if len(names) == 0 {
		fmt.Fprintf(out, "%s: none\n", title)
		return
	}
	fmt.Fprintf(out, "%s: %s\n", title, strings.Join(names, " "))
}
