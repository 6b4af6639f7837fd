package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/agenda/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "AGENDA"

	cfgKeyBackend  = "backend"
	cfgKeyLogLevel = "log_level"

	defaultBackend  = types.BackendMemory
	defaultLogLevel = "warn"
)

// flagKeys maps global flags onto config keys.
var flagKeys = map[string]string{
	"backend":   cfgKeyBackend,
	"log-level": cfgKeyLogLevel,
}

// loadConfig reads config.yaml from configDir using Viper. Precedence, high
// to low: flags, AGENDA_* environment variables, config.yaml, defaults.
// A missing config.yaml is not an error.
func loadConfig(configDir string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}
