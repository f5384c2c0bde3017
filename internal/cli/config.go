package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/ctebug/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "CTEBUG"

	// Config keys; flags with the same name override them.
	cfgKeyEngine        = "engine"
	cfgKeyDBName        = "db_name"
	cfgKeyRootID        = "root"
	cfgKeyExpectedCount = "expected"
	cfgKeyPragmas       = "pragmas"
	cfgKeyOrder         = "order"
)

// loadConfig reads config.yaml from configDir using Viper, layering
// defaults < file < CTEBUG_* environment < flags that were set explicitly.
// A missing config.yaml is not an error.
func loadConfig(configDir string, fs *pflag.FlagSet) (types.Config, error) {
	def := types.DefaultConfig()

	v := viper.New()
	v.SetDefault(cfgKeyEngine, def.Engine)
	v.SetDefault(cfgKeyDBName, def.DBName)
	v.SetDefault(cfgKeyRootID, def.RootID)
	v.SetDefault(cfgKeyExpectedCount, def.ExpectedCount)
	v.SetDefault(cfgKeyPragmas, def.Pragmas)
	v.SetDefault(cfgKeyOrder, variantNames(def.Order))

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	for _, key := range []string{cfgKeyEngine, cfgKeyRootID, cfgKeyExpectedCount} {
		if f := fs.Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return types.Config{}, fmt.Errorf("bind flag %s: %w", key, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := types.Config{
		Engine:        v.GetString(cfgKeyEngine),
		DBName:        v.GetString(cfgKeyDBName),
		RootID:        v.GetInt(cfgKeyRootID),
		ExpectedCount: v.GetInt(cfgKeyExpectedCount),
		Pragmas:       v.GetStringSlice(cfgKeyPragmas),
	}

	order, err := parseVariants(v.GetStringSlice(cfgKeyOrder))
	if err != nil {
		return types.Config{}, err
	}
	cfg.Order = order

	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// parseVariants accepts names separated by commas or given as separate items.
func parseVariants(names []string) ([]types.Variant, error) {
	var out []types.Variant
	for _, item := range names {
		for _, name := range strings.Split(item, ",") {
			if strings.TrimSpace(name) == "" {
				continue
			}
			v, err := types.ParseVariant(name)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	return out, nil
}

func variantNames(vs []types.Variant) []string {
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = string(v)
	}
	return names
}
