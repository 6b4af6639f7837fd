package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/agenda/internal/paths"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend  string `yaml:"backend"`
	LogLevel string `yaml:"log_level"`
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration",
		Long:  "Create the configuration directory and write config.yaml with default values if it does not exist.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(a.configDir, 0o755); err != nil {
				return sysError(fmt.Errorf("create config directory: %w", err))
			}

			path := paths.ConfigFile(a.configDir)
			created, err := writeConfigIfMissing(path)
			if err != nil {
				return sysError(fmt.Errorf("write config: %w", err))
			}

			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", path)
			}
			return nil
		},
	}
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. It reports whether it wrote the file.
func writeConfigIfMissing(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&configFile{
		Backend:  defaultBackend,
		LogLevel: defaultLogLevel,
	})
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	return true, os.WriteFile(path, data, 0o644)
}
