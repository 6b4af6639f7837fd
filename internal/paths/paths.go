// Package paths resolves the configuration directory location.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppDirName is the per-user directory name under the platform config root.
const AppDirName = "agenda"

// EnvConfigDir overrides the configuration directory.
const EnvConfigDir = "AGENDA_CONFIG_DIR"

// ConfigFileName is the configuration file inside the config directory.
const ConfigFileName = "config.yaml"

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/agenda (fallback ~/.config/agenda)
// macOS:   ~/Library/Application Support/agenda
// Windows: %APPDATA%/agenda
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, AppDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", AppDirName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppDirName), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > AGENDA_CONFIG_DIR env > DefaultConfigDir(). Explicit values
// are made absolute.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ConfigFile returns the path of the configuration file in dir.
func ConfigFile(dir string) string {
	return filepath.Join(dir, ConfigFileName)
}
