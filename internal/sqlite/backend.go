// Package sqlite opens isolated in-memory SQLite instances, loads the
// hierarchy fixture into them, and runs the recursive query in its bound and
// literal forms.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/ctebug/pkg/types"
)

// Instance errors.
var (
	ErrInstanceClosed = errors.New("instance is closed")
	ErrPragmaInvalid  = errors.New("invalid pragma")
)

// Instance is one named in-memory database. The name is unique per Open, so
// two instances never share tables even though both use a shared cache.
type Instance struct {
	mu      sync.Mutex
	closed  bool
	name    string
	engine  string
	pragmas []string
	db      *sql.DB
}

// Open creates a new in-memory instance for cfg.Engine whose name starts with
// prefix. Open does not touch the database; the first Conn does.
func Open(cfg types.Config, prefix string) (*Instance, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, p := range cfg.Pragmas {
		if err := checkPragma(p); err != nil {
			return nil, err
		}
	}

	name := instanceName(prefix)
	db, err := sql.Open(cfg.Engine, dsn(name))
	if err != nil {
		return nil, fmt.Errorf("open %s instance %s: %w", cfg.Engine, name, err)
	}

	return &Instance{
		name:    name,
		engine:  cfg.Engine,
		pragmas: append([]string(nil), cfg.Pragmas...),
		db:      db,
	}, nil
}

// Name returns the unique database name of the instance.
func (i *Instance) Name() string {
	return i.name
}

// Engine returns the driver name the instance was opened with.
func (i *Instance) Engine() string {
	return i.engine
}

// Conn acquires one session and applies the configured pragmas to it.
// The caller must Close the returned connection.
func (i *Instance) Conn(ctx context.Context) (*sql.Conn, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return nil, ErrInstanceClosed
	}

	conn, err := i.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", i.name, err)
	}
	for _, p := range i.pragmas {
		if _, err := conn.ExecContext(ctx, "PRAGMA "+p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("pragma %s: %w", p, err)
		}
	}
	return conn, nil
}

// Close releases the instance. The in-memory database disappears with its
// last connection. Close is idempotent.
func (i *Instance) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return nil
	}
	i.closed = true
	return i.db.Close()
}

// dsn builds a URI filename for a named, shared-cache in-memory database.
func dsn(name string) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
}

// instanceName appends a UUID v7 to prefix.
func instanceName(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		id = uuid.New()
	}
	return prefix + "_" + strings.ReplaceAll(id.String(), "-", "")
}

// checkPragma accepts "name" or "name=value" with no statement separators.
func checkPragma(p string) error {
	name, _, _ := strings.Cut(p, "=")
	if strings.TrimSpace(name) == "" || strings.ContainsAny(p, ";\n") {
		return fmt.Errorf("%w: %q", ErrPragmaInvalid, p)
	}
	return nil
}
