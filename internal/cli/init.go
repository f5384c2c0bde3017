package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/ctebug/internal/paths"
	"github.com/mesh-intelligence/ctebug/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Engine   string   `yaml:"engine"`
	DBName   string   `yaml:"db_name"`
	Root     int      `yaml:"root"`
	Expected int      `yaml:"expected"`
	Pragmas  []string `yaml:"pragmas"`
	Order    []string `yaml:"order"`
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config.yaml",
		Long:  "Create the configuration directory and write config.yaml with the resolved settings, unless it already exists.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return withCode(exitSysError, fmt.Errorf("resolve config dir: %w", err))
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return withCode(exitSysError, fmt.Errorf("create config directory: %w", err))
	}

	path := paths.ConfigFile(configDir)
	created, err := writeConfigIfMissing(path, loaded)
	if err != nil {
		return withCode(exitSysError, fmt.Errorf("write config: %w", err))
	}

	if created {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Config already exists at %s\n", path)
	}
	return nil
}

// writeConfigIfMissing creates config.yaml from cfg if the file does not
// exist. It reports whether the file was written.
func writeConfigIfMissing(path string, cfg types.Config) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	out := configFile{
		Engine:   cfg.Engine,
		DBName:   cfg.DBName,
		Root:     cfg.RootID,
		Expected: cfg.ExpectedCount,
		Pragmas:  cfg.Pragmas,
		Order:    variantNames(cfg.Order),
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}

	header := []byte("# ctebug configuration\n")
	return true, os.WriteFile(path, append(header, data...), 0o644)
}
