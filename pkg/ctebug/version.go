// Package ctebug holds build metadata for the ctebug binary.
package ctebug

// Version is the release version of ctebug.
const Version = "0.1.0"

// ModulePath is the Go module path.
const ModulePath = "github.com/mesh-intelligence/ctebug"
