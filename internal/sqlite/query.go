package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/ctebug/pkg/types"
)

// RecursiveQuery walks HIERARCHY down from the bound root (dummy), joins the
// result with SIMPLETABLE (dummy2), and projects dummy. The only placeholder
// is the root identifier in dummy's base case.
const RecursiveQuery = "WITH dummy(id) AS (" +
	"SELECT id FROM HIERARCHY WHERE id=? " +
	"UNION ALL " +
	"SELECT h.id FROM dummy d INNER JOIN HIERARCHY h on d.id=h.parentid" +
	"), " +
	"dummy2(cid) AS (" +
	"SELECT h.id from dummy d INNER JOIN SIMPLETABLE h on d.id=h.id" +
	") " +
	"SELECT " +
	"s.id " +
	"FROM dummy s "

// LiteralQuery returns RecursiveQuery with its first placeholder replaced by
// the decimal text of root.
func LiteralQuery(root int) string {
	return strings.Replace(RecursiveQuery, "?", strconv.Itoa(root), 1)
}

// QueryBound prepares RecursiveQuery on conn and executes it with root bound.
// The returned release function closes the rows, then the statement.
func QueryBound(ctx context.Context, conn *sql.Conn, root int) (*sql.Rows, func(), error) {
	stmt, err := conn.PrepareContext(ctx, RecursiveQuery)
	if err != nil {
		return nil, nil, fmt.Errorf("prepare recursive query: %w", err)
	}

	rows, err := stmt.QueryContext(ctx, root)
	if err != nil {
		stmt.Close()
		return nil, nil, fmt.Errorf("execute prepared recursive query: %w", err)
	}

	release := func() {
		rows.Close()
		stmt.Close()
	}
	return rows, release, nil
}

// QueryLiteral executes LiteralQuery(root) on conn without arguments.
func QueryLiteral(ctx context.Context, conn *sql.Conn, root int) (*sql.Rows, func(), error) {
	rows, err := conn.QueryContext(ctx, LiteralQuery(root))
	if err != nil {
		return nil, nil, fmt.Errorf("execute literal recursive query: %w", err)
	}
	return rows, func() { rows.Close() }, nil
}

// Query runs the given variant.
func Query(ctx context.Context, conn *sql.Conn, v types.Variant, root int) (*sql.Rows, func(), error) {
	switch v {
	case types.VariantBound:
		return QueryBound(ctx, conn, root)
	case types.VariantLiteral:
		return QueryLiteral(ctx, conn, root)
	default:
		return nil, nil, fmt.Errorf("%w: %q", types.ErrVariantUnknown, v)
	}
}
