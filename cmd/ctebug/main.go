// Command ctebug reproduces the recursive CTE bound-parameter divergence
// against isolated in-memory SQLite instances.
package main

import "github.com/mesh-intelligence/ctebug/internal/cli"

func main() {
	cli.Execute()
}
