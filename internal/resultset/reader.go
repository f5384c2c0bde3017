// Package resultset prints a query result as a fixed-width diagnostic table
// and counts its rows.
//
// Reading is not recoverable: a metadata, scan, or iteration failure panics
// with a *ReadError. Use TryRead at boundaries that must return an error.
package resultset

import (
	"database/sql"
	"fmt"
	"io"
	"strings"
)

// FieldWidth is the width of every printed cell.
const FieldWidth = 32

// fieldFormat right-aligns a cell and terminates it with a bar.
var fieldFormat = fmt.Sprintf("%%%ds|", FieldWidth)

// Table is what Read saw.
type Table struct {
	Columns []string
	Rows    [][]string
	Count   int
}

// ReadError wraps a driver error raised while reading rows.
type ReadError struct {
	Op  string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read result: %s: %v", e.Op, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Read prints rows to w and returns the collected table. It consumes rows
// until exhausted but does not close them.
func Read(w io.Writer, rows *sql.Rows) Table {
	columns := mustColumns(rows)

	fmt.Fprint(w, "   | ")
	for _, c := range columns {
		fmt.Fprintf(w, fieldFormat, c)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", len(columns)*FieldWidth+7))

	t := Table{Columns: columns}
	for rows.Next() {
		fields := mustFields(rows, len(columns))

		fmt.Fprintf(w, " %d | ", t.Count)
		for _, f := range fields {
			fmt.Fprintf(w, fieldFormat, f)
		}
		fmt.Fprintln(w)

		t.Rows = append(t.Rows, fields)
		t.Count++
	}
	if err := rows.Err(); err != nil {
		panic(&ReadError{Op: "iterate", Err: err})
	}

	fmt.Fprintf(w, "Results size: %d\n", t.Count)
	return t
}

// TryRead is Read with a *ReadError panic turned into a returned error.
// Other panics propagate.
func TryRead(w io.Writer, rows *sql.Rows) (t Table, err error) {
	defer func() {
		if r := recover(); r != nil {
			re, ok := r.(*ReadError)
			if !ok {
				panic(r)
			}
			err = re
		}
	}()
	return Read(w, rows), nil
}

func mustColumns(rows *sql.Rows) []string {
	columns, err := rows.Columns()
	if err != nil {
		panic(&ReadError{Op: "columns", Err: err})
	}
	return columns
}

// mustFields scans the current row into strings. NULL prints as "null".
func mustFields(rows *sql.Rows, n int) []string {
	values := make([]sql.NullString, n)
	dest := make([]any, n)
	for i := range values {
		dest[i] = &values[i]
	}
	if err := rows.Scan(dest...); err != nil {
		panic(&ReadError{Op: "scan", Err: err})
	}

	fields := make([]string, n)
	for i, v := range values {
		if v.Valid {
			fields[i] = v.String
		} else {
			fields[i] = "null"
		}
	}
	return fields
}
