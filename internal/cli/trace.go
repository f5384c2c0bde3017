package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ctebug/internal/oracle"
	"github.com/mesh-intelligence/ctebug/pkg/types"
)

func newTraceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trace",
		Short: "Print the expected CTE contents for the configured root",
		RunE: func(cmd *cobra.Command, args []string) error {
			tr := oracle.Evaluate(types.ReferenceFixture(), loaded.RootID)
			out := cmd.OutOrStdout()

			if flags.jsonMode {
				return writeJSON(out, tr)
			}

			fmt.Fprintf(out, "root:       %d\n", loaded.RootID)
			fmt.Fprintf(out, "dummy:      %v\n", tr.Dummy)
			fmt.Fprintf(out, "dummy2:     %v\n", tr.Dummy2)
			fmt.Fprintf(out, "result:     %v\n", tr.Final)
			fmt.Fprintf(out, "iterations: %d\n", tr.Iterations)
			fmt.Fprintf(out, "rows:       %d (expected %d)\n", tr.Count(), loaded.ExpectedCount)
			return nil
		},
	}
}
