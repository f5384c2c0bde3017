// Package cli implements the ctebug command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ctebug/internal/paths"
	"github.com/mesh-intelligence/ctebug/pkg/ctebug"
	"github.com/mesh-intelligence/ctebug/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	jsonMode  bool
}

var flags rootFlags

// loaded is the configuration resolved by PersistentPreRunE.
var loaded types.Config

// exitError carries the process exit code for an error returned by a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// withCode wraps err so that Execute exits with code.
func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// exitCode returns the exit code for err: the wrapped code, or exitUserError.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// NewRootCmd creates the top-level "ctebug" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	flags = rootFlags{}
	loaded = types.Config{}

	root := &cobra.Command{
		Use:   "ctebug",
		Short: "Reproduce the recursive CTE bound-parameter divergence",
		Long: "ctebug loads the same hierarchy fixture into isolated in-memory SQLite\n" +
			"instances and runs one recursive query with the root bound as a\n" +
			"parameter and with the root inlined as a literal, then compares the rows.",
		Version: ctebug.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			configDir, err := paths.ResolveConfigDir(flags.configDir)
			if err != nil {
				return withCode(exitSysError, fmt.Errorf("resolve config dir: %w", err))
			}
			cfg, err := loadConfig(configDir, cmd.Flags())
			if err != nil {
				return withCode(exitUserError, fmt.Errorf("load config: %w", err))
			}
			loaded = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/ctebug)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().String(cfgKeyEngine, types.EngineSQLite, "database engine (sqlite, or sqlite3 on cgo builds)")
	root.PersistentFlags().Int(cfgKeyRootID, types.DefaultRootID, "root identifier passed to the recursive query")
	root.PersistentFlags().Int(cfgKeyExpectedCount, types.DefaultExpectedCount, "expected row count")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newTraceCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}
