package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/ctebug/pkg/types"
)

// BuildFixture creates HIERARCHY and SIMPLETABLE on conn and inserts the
// fixture rows through prepared statements. It does not check whether the
// tables exist: a second call on the same session fails.
func BuildFixture(ctx context.Context, conn *sql.Conn, f types.Fixture) error {
	if err := f.Validate(); err != nil {
		return fmt.Errorf("validate fixture: %w", err)
	}

	for _, stmt := range schemaStatements {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	if err := insertRows(ctx, conn, insertHierarchy, len(f.Hierarchy), func(i int) []any {
		return []any{f.Hierarchy[i].ID, f.Hierarchy[i].ParentID}
	}); err != nil {
		return fmt.Errorf("insert hierarchy: %w", err)
	}

	if err := insertRows(ctx, conn, insertSimpleTable, len(f.Lookup), func(i int) []any {
		return []any{f.Lookup[i].ID, f.Lookup[i].Value}
	}); err != nil {
		return fmt.Errorf("insert simpletable: %w", err)
	}

	return nil
}

// insertRows prepares query once and executes it n times with args(i).
func insertRows(ctx context.Context, conn *sql.Conn, query string, n int, args func(i int) []any) error {
	stmt, err := conn.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}
