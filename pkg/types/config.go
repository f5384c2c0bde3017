package types

import (
	"errors"
	"fmt"
)

// Supported engine names. EngineSQLite is the pure-Go driver and is always
// available; EngineSQLite3 is registered only on cgo-enabled builds.
const (
	EngineSQLite  = "sqlite"
	EngineSQLite3 = "sqlite3"
)

// Defaults used by DefaultConfig.
const (
	DefaultDBName        = "testdb"
	DefaultRootID        = 1
	DefaultExpectedCount = 5
)

// DefaultPragmas are applied to every session. read_uncommitted=0 keeps a
// shared-cache reader from seeing another connection's uncommitted rows.
var DefaultPragmas = []string{"read_uncommitted=0"}

// Config validation errors.
var (
	ErrEngineEmpty          = errors.New("engine must not be empty")
	ErrEngineUnknown        = errors.New("unknown engine")
	ErrDBNameEmpty          = errors.New("database name must not be empty")
	ErrExpectedCountInvalid = errors.New("expected count must be positive")
	ErrOrderEmpty           = errors.New("variant order must not be empty")
)

// Config holds everything a scenario run needs.
type Config struct {
	Engine        string    `json:"engine" yaml:"engine"`
	DBName        string    `json:"db_name" yaml:"db_name"`
	RootID        int       `json:"root_id" yaml:"root_id"`
	ExpectedCount int       `json:"expected_count" yaml:"expected_count"`
	Pragmas       []string  `json:"pragmas" yaml:"pragmas"`
	Order         []Variant `json:"order" yaml:"order"`
}

// knownEngines lists the engines that Validate accepts. Drivers register
// themselves here from their init functions.
var knownEngines = map[string]bool{
	EngineSQLite: true,
}

// RegisterEngine marks an engine name as valid.
func RegisterEngine(name string) {
	knownEngines[name] = true
}

// KnownEngine reports whether name was registered.
func KnownEngine(name string) bool {
	return knownEngines[name]
}

// DefaultConfig returns the configuration of the reference reproduction:
// the pure-Go engine, root 1, five expected rows, prepared statement first.
func DefaultConfig() Config {
	return Config{
		Engine:        EngineSQLite,
		DBName:        DefaultDBName,
		RootID:        DefaultRootID,
		ExpectedCount: DefaultExpectedCount,
		Pragmas:       append([]string(nil), DefaultPragmas...),
		Order:         []Variant{VariantBound, VariantLiteral},
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Engine == "" {
		return ErrEngineEmpty
	}
	if !knownEngines[c.Engine] {
		return fmt.Errorf("%w: %q", ErrEngineUnknown, c.Engine)
	}
	if c.DBName == "" {
		return ErrDBNameEmpty
	}
	if c.ExpectedCount <= 0 {
		return ErrExpectedCountInvalid
	}
	if len(c.Order) == 0 {
		return ErrOrderEmpty
	}
	for _, v := range c.Order {
		if _, err := ParseVariant(string(v)); err != nil {
			return err
		}
	}
	return nil
}
