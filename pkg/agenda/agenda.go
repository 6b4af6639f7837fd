// Package agenda opens registry sets on a configured table backend.
//
// Example:
//
//	set, err := agenda.Open(types.Config{Backend: types.BackendSQLite}, logger)
//	if err != nil {
//	    return err
//	}
//	defer set.Close()
//
//	appt, err := set.Appointments.Add(date, "Quarterly review")
package agenda

import (
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/agenda/internal/sqlite"
	"github.com/mesh-intelligence/agenda/pkg/registry"
	"github.com/mesh-intelligence/agenda/pkg/types"
)

// Version is the release version reported by the CLI.
const Version = "0.1.0"

// ModulePath is the Go module path of this project.
const ModulePath = "github.com/mesh-intelligence/agenda"

// Open validates cfg and returns a registry set on the selected backend.
// The caller must Close the set to release the backend.
func Open(cfg types.Config, logger *slog.Logger) (*registry.Set, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case types.BackendSQLite:
		b := sqlite.NewBackend()
		if err := b.Attach(); err != nil {
			return nil, fmt.Errorf("attach sqlite backend: %w", err)
		}
		set, err := registry.NewSet(registry.Tables{
			Appointments: sqlite.NewTable[*types.Appointment](b, types.KindAppointment),
			Contacts:     sqlite.NewTable[*types.Contact](b, types.KindContact),
			Tasks:        sqlite.NewTable[*types.Task](b, types.KindTask),
			Closer:       b,
		}, logger)
		if err != nil {
			b.Detach()
			return nil, err
		}
		return set, nil
	default:
		return registry.NewSet(registry.Tables{}, logger)
	}
}
