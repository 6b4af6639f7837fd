package registry

import (
	"log/slog"
	"time"

	"github.com/mesh-intelligence/agenda/pkg/types"
)

// AppointmentRegistry owns the appointments of one process.
type AppointmentRegistry struct {
	*registry[*types.Appointment]
}

// NewAppointmentRegistry returns a registry over table. A nil table selects
// an in-memory table; a nil logger discards log output.
func NewAppointmentRegistry(table types.Table[*types.Appointment], logger *slog.Logger) (*AppointmentRegistry, error) {
	core, err := newRegistry(types.KindAppointment, table, logger)
	if err != nil {
		return nil, err
	}
	return &AppointmentRegistry{core}, nil
}

// Add registers a new appointment under the next identifier.
func (r *AppointmentRegistry) Add(date time.Time, description string) (*types.Appointment, error) {
	return r.add(func(id string) (*types.Appointment, error) {
		return types.NewAppointment(id, date, description)
	})
}

func (r *AppointmentRegistry) EditDate(id string, date time.Time) error {
	return r.edit("edit_date", id, func(a *types.Appointment) error {
		return a.SetDate(date)
	})
}

func (r *AppointmentRegistry) EditDescription(id, description string) error {
	return r.edit("edit_description", id, func(a *types.Appointment) error {
		return a.SetDescription(description)
	})
}
