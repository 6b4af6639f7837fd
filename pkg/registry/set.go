package registry

import (
	"io"
	"log/slog"

	"github.com/mesh-intelligence/agenda/pkg/types"
)

// Tables selects the storage for each registry of a Set. Nil tables fall back
// to in-memory tables. Closer, if set, is closed by Set.Close.
type Tables struct {
	Appointments types.Table[*types.Appointment]
	Contacts     types.Table[*types.Contact]
	Tasks        types.Table[*types.Task]
	Closer       io.Closer
}

// Set bundles one registry per entity kind.
type Set struct {
	Appointments *AppointmentRegistry
	Contacts     *ContactRegistry
	Tasks        *TaskRegistry

	closer io.Closer
}

// NewSet builds the three registries over tables.
func NewSet(tables Tables, logger *slog.Logger) (*Set, error) {
	appts, err := NewAppointmentRegistry(tables.Appointments, logger)
	if err != nil {
		return nil, err
	}
	contacts, err := NewContactRegistry(tables.Contacts, logger)
	if err != nil {
		return nil, err
	}
	tasks, err := NewTaskRegistry(tables.Tasks, logger)
	if err != nil {
		return nil, err
	}
	return &Set{
		Appointments: appts,
		Contacts:     contacts,
		Tasks:        tasks,
		closer:       tables.Closer,
	}, nil
}

// Close releases the backing storage. Idempotent when the closer is.
func (s *Set) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
