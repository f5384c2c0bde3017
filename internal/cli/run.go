package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ctebug/internal/oracle"
	"github.com/mesh-intelligence/ctebug/internal/scenario"
	"github.com/mesh-intelligence/ctebug/pkg/types"
)

// errDiverged is returned by run when any outcome differs from the oracle or
// from another variant.
var errDiverged = errors.New("recursive query results diverged")

var (
	passLabel = color.New(color.FgGreen, color.Bold).SprintFunc()
	failLabel = color.New(color.FgRed, color.Bold).SprintFunc()
)

// runReport is the JSON form of a run.
type runReport struct {
	Engine      string             `json:"engine"`
	Shared      bool               `json:"shared"`
	Expected    int                `json:"expected"`
	Oracle      []int              `json:"oracle"`
	Outcomes    []types.Outcome    `json:"outcomes"`
	Divergences []types.Divergence `json:"divergences"`
}

func newRunCmd() *cobra.Command {
	var (
		variants []string
		shared   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the bound and literal scenarios and compare them",
		Long: "Run each variant in its own in-memory instance (or all variants in one\n" +
			"shared instance with --shared), print the result tables, and compare\n" +
			"the rows with the traced recursion. Exits 1 when any result diverges.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loaded
			if len(variants) > 0 {
				order, err := parseVariants(variants)
				if err != nil {
					return withCode(exitUserError, err)
				}
				cfg.Order = order
			}
			return runScenarios(cmd, cfg, shared)
		},
	}

	cmd.Flags().StringSliceVar(&variants, "variant", nil, "variants to run, in order (bound, literal)")
	cmd.Flags().BoolVar(&shared, "shared", false, "run all variants against one shared instance")
	return cmd
}

func runScenarios(cmd *cobra.Command, cfg types.Config, shared bool) error {
	out := cmd.OutOrStdout()

	// Keep stdout parseable in JSON mode.
	progress := out
	if flags.jsonMode {
		progress = cmd.ErrOrStderr()
	}

	run := scenario.RunAll
	if shared {
		run = scenario.RunShared
	}
	outcomes, err := run(cmd.Context(), cfg, progress)
	if err != nil {
		return withCode(exitSysError, err)
	}

	tr := oracle.Evaluate(types.ReferenceFixture(), cfg.RootID)
	divs := scenario.Compare(cfg, tr, outcomes)

	if flags.jsonMode {
		if err := writeJSON(out, runReport{
			Engine:      cfg.Engine,
			Shared:      shared,
			Expected:    cfg.ExpectedCount,
			Oracle:      tr.SortedFinal(),
			Outcomes:    outcomes,
			Divergences: divs,
		}); err != nil {
			return withCode(exitSysError, err)
		}
	} else {
		printSummary(out, cfg, outcomes, divs)
	}

	if len(divs) > 0 {
		return withCode(exitUserError, fmt.Errorf("%w: %d divergence(s)", errDiverged, len(divs)))
	}
	return nil
}

func printSummary(w io.Writer, cfg types.Config, outcomes []types.Outcome, divs []types.Divergence) {
	failed := make(map[types.Variant]bool, len(divs))
	for _, d := range divs {
		failed[d.Variant] = true
	}

	fmt.Fprintln(w)
	for _, o := range outcomes {
		label := passLabel("PASS")
		if failed[o.Variant] {
			label = failLabel("FAIL")
		}
		fmt.Fprintf(w, "%-8s %s  %d/%d rows  %v  (%s %s)\n",
			o.Variant, label, o.Count, cfg.ExpectedCount, o.IDs, o.Engine, o.Instance)
	}
	for _, d := range divs {
		fmt.Fprintf(w, "  %s\n", d)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
