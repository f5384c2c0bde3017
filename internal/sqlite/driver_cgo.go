//go:build cgo

package sqlite

import (
	// cgo driver, registered as "sqlite3".
	_ "github.com/mattn/go-sqlite3"

	"github.com/mesh-intelligence/ctebug/pkg/types"
)

func init() {
	types.RegisterEngine(types.EngineSQLite3)
}
