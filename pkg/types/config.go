package types

import "errors"

// Config selects the table backend registries are opened on.
type Config struct {
	Backend string `json:"backend" yaml:"backend" mapstructure:"backend"`
}

// Supported backend names.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

var knownBackends = map[string]bool{
	BackendMemory: true,
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}
