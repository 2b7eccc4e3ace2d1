package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/cpudispatch"
	"github.com/hupe1980/cpudispatch/dispatch"
	"github.com/hupe1980/cpudispatch/feature"
)

var dispatchCmd = &cobra.Command{
	Use:   "dispatch [FEATURE...]",
	Short: "Show which implementation a dispatch table would select",
	Long: `Print the microarchitecture preference list of the detected processor.

With arguments, build a table with one entry per feature identifier, in the
order given, followed by a generic fallback, and resolve it the way a
dispatched operation would:

  cpuinfo dispatch AVX512F AVX2 SSE4.1`,
	RunE: runDispatch,
}

func init() {
	dispatchCmd.Flags().String("policy", "first", "resolution policy: first or prefer")
	_ = viper.BindPFlag("policy", dispatchCmd.Flags().Lookup("policy"))
	rootCmd.AddCommand(dispatchCmd)
}

type dispatchReport struct {
	Microarchitecture string   `json:"microarchitecture"`
	Preferences       []string `json:"preferences"`
	Policy            string   `json:"policy,omitempty"`
	Candidates        []string `json:"candidates,omitempty"`
	Selected          string   `json:"selected,omitempty"`
}

func parsePolicy(s string) (dispatch.Policy, error) {
	switch strings.ToLower(s) {
	case "first", "first-qualifying":
		return dispatch.FirstQualifying, nil
	case "prefer", "prefer-microarchitecture":
		return dispatch.PreferMicroarchitecture, nil
	default:
		return 0, fmt.Errorf("unknown policy %q (want first or prefer): %w", s, cpudispatch.ErrInvalidArgument)
	}
}

// featureTable builds a table that selects the first identifier the
// processor supports.
func featureTable(arch feature.Architecture, ids []string) (dispatch.Table[string], error) {
	table := make(dispatch.Table[string], 0, len(ids)+1)
	for _, id := range ids {
		isa, simd, sys, err := cpudispatch.LookupFeature(arch, id)
		if err != nil {
			return nil, err
		}
		table = append(table, dispatch.Entry[string]{
			Name:        id,
			Fn:          id,
			Requirement: dispatch.Requirement{ISA: isa, SIMD: simd, System: sys},
		})
	}
	return append(table, dispatch.Entry[string]{Name: "generic", Fn: "generic"}), nil
}

func runDispatch(cmd *cobra.Command, args []string) error {
	policy, err := parsePolicy(viper.GetString("policy"))
	if err != nil {
		return err
	}
	caps, err := detect(cmd.Context())
	if err != nil {
		return err
	}

	r := dispatchReport{Microarchitecture: caps.Microarchitecture().Description()}
	for _, m := range dispatch.Preferences(caps.Microarchitecture()) {
		if m == feature.AnyMicroarchitecture {
			r.Preferences = append(r.Preferences, "any")
			continue
		}
		r.Preferences = append(r.Preferences, m.Description())
	}

	if len(args) > 0 {
		table, err := featureTable(caps.Architecture(), args)
		if err != nil {
			return err
		}
		cell := dispatch.NewCell(table, caps,
			dispatch.WithName("cpuinfo"),
			dispatch.WithPolicy(policy),
			dispatch.WithRecorder(caps),
		)
		r.Policy = policy.String()
		r.Candidates = args
		r.Selected = cell.Get()
	}

	out := cmd.OutOrStdout()
	if viper.GetBool("json") {
		return writeJSON(out, r)
	}
	fmt.Fprintf(out, "Microarchitecture: %s\n", r.Microarchitecture)
	fmt.Fprintf(out, "Preferences: %s\n", strings.Join(r.Preferences, " > "))
	if r.Selected != "" {
		fmt.Fprintf(out, "Selected (%s): %s\n", r.Policy, r.Selected)
	}
	return nil
}
