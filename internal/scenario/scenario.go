// Package scenario runs the recursive query reproduction: one isolated
// in-memory instance per variant, the same fixture in each, and a comparison
// of the row counts against a traced oracle and against each other.
package scenario

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/mesh-intelligence/ctebug/internal/oracle"
	"github.com/mesh-intelligence/ctebug/internal/resultset"
	"github.com/mesh-intelligence/ctebug/internal/sqlite"
	"github.com/mesh-intelligence/ctebug/pkg/types"
)

// Run executes one variant in a fresh instance and returns what it observed.
// Progress lines and the result table are written to w. The session and the
// instance are released on every return path.
func Run(ctx context.Context, cfg types.Config, v types.Variant, w io.Writer) (types.Outcome, error) {
	fmt.Fprintln(w, "Connecting to database...")

	inst, err := sqlite.Open(cfg, cfg.DBName)
	if err != nil {
		return types.Outcome{}, err
	}
	defer inst.Close()

	conn, err := inst.Conn(ctx)
	if err != nil {
		return types.Outcome{}, err
	}
	defer conn.Close()

	if err := sqlite.BuildFixture(ctx, conn, types.ReferenceFixture()); err != nil {
		return types.Outcome{}, fmt.Errorf("build fixture: %w", err)
	}

	out, err := runVariant(ctx, conn, cfg, v, w)
	if err != nil {
		return types.Outcome{}, err
	}
	out.Engine = inst.Engine()
	out.Instance = inst.Name()
	return out, nil
}

// RunAll runs every variant in cfg.Order, each in its own instance.
func RunAll(ctx context.Context, cfg types.Config, w io.Writer) ([]types.Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	outcomes := make([]types.Outcome, 0, len(cfg.Order))
	for _, v := range cfg.Order {
		out, err := Run(ctx, cfg, v, w)
		if err != nil {
			return outcomes, fmt.Errorf("%s variant: %w", v, err)
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

// RunShared runs every variant in cfg.Order against one instance and one
// session, so each variant sees the statement history of the ones before it.
func RunShared(ctx context.Context, cfg types.Config, w io.Writer) ([]types.Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fmt.Fprintln(w, "Connecting to database...")

	inst, err := sqlite.Open(cfg, cfg.DBName)
	if err != nil {
		return nil, err
	}
	defer inst.Close()

	conn, err := inst.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := sqlite.BuildFixture(ctx, conn, types.ReferenceFixture()); err != nil {
		return nil, fmt.Errorf("build fixture: %w", err)
	}

	outcomes := make([]types.Outcome, 0, len(cfg.Order))
	for _, v := range cfg.Order {
		out, err := runVariant(ctx, conn, cfg, v, w)
		if err != nil {
			return outcomes, fmt.Errorf("%s variant: %w", v, err)
		}
		out.Engine = inst.Engine()
		out.Instance = inst.Name()
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

// runVariant queries conn and reads the result. The rows and any prepared
// statement are closed before it returns.
func runVariant(ctx context.Context, conn *sql.Conn, cfg types.Config, v types.Variant, w io.Writer) (types.Outcome, error) {
	fmt.Fprintf(w, "Using %s\n", v.Describe())

	rows, release, err := sqlite.Query(ctx, conn, v, cfg.RootID)
	if err != nil {
		return types.Outcome{}, err
	}
	defer release()

	fmt.Fprintf(w, "SQL %s query executed...\n", v.Describe())

	table, err := resultset.TryRead(w, rows)
	if err != nil {
		return types.Outcome{}, err
	}

	ids := make([]int, 0, table.Count)
	for _, row := range table.Rows {
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return types.Outcome{}, fmt.Errorf("parse id %q: %w", row[0], err)
		}
		ids = append(ids, id)
	}

	return types.Outcome{
		Variant: v,
		Columns: table.Columns,
		IDs:     ids,
		Count:   table.Count,
	}, nil
}

// Compare checks each outcome against the expected count and the traced
// oracle, then checks every outcome against the first one. An empty result
// means all variants returned what the recursion should produce.
func Compare(cfg types.Config, tr oracle.Trace, outcomes []types.Outcome) []types.Divergence {
	var divs []types.Divergence
	want := tr.SortedFinal()

	for _, o := range outcomes {
		if o.Count != cfg.ExpectedCount {
			divs = append(divs, types.Divergence{
				Kind:     types.DivergenceCount,
				Variant:  o.Variant,
				Expected: strconv.Itoa(cfg.ExpectedCount),
				Actual:   strconv.Itoa(o.Count),
			})
		}
		got := sortedCopy(o.IDs)
		if !slices.Equal(got, want) {
			divs = append(divs, types.Divergence{
				Kind:     types.DivergenceRows,
				Variant:  o.Variant,
				Expected: fmt.Sprint(want),
				Actual:   fmt.Sprint(got),
			})
		}
	}

	if len(outcomes) < 2 {
		return divs
	}
	first := outcomes[0]
	for _, o := range outcomes[1:] {
		if o.Count != first.Count || !slices.Equal(sortedCopy(o.IDs), sortedCopy(first.IDs)) {
			divs = append(divs, types.Divergence{
				Kind:     types.DivergenceVariant,
				Variant:  o.Variant,
				Other:    first.Variant,
				Expected: fmt.Sprintf("%d rows", first.Count),
				Actual:   fmt.Sprintf("%d rows", o.Count),
			})
		}
	}
	return divs
}

func sortedCopy(ids []int) []int {
	out := slices.Clone(ids)
	slices.Sort(out)
	return out
}
