package types

import (
	"encoding/json"
	"time"
)

// Appointment is a dated entry with a free-text description.
// The identifier is fixed at construction; Date and Description change only
// through setters that validate before assigning.
type Appointment struct {
	id          string
	date        time.Time
	description string
}

// AppointmentRecord is the serialized form of an Appointment.
type AppointmentRecord struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

// NewAppointment validates every field and returns the appointment.
// The date must not be before the current time.
func NewAppointment(id string, date time.Time, description string) (*Appointment, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if err := ValidateNotPast(FieldDate, date, time.Now()); err != nil {
		return nil, err
	}
	if err := validateDescription(FieldDescription, description); err != nil {
		return nil, err
	}
	return &Appointment{id: id, date: date, description: description}, nil
}

// RestoreAppointment rebuilds an appointment from its record. Every rule of
// NewAppointment applies except that the date may have passed since it was
// entered.
func RestoreAppointment(r AppointmentRecord) (*Appointment, error) {
	if err := validateID(r.ID); err != nil {
		return nil, err
	}
	if r.Date.IsZero() {
		return nil, invalidField(FieldDate, ReasonMissing, "must be set")
	}
	if err := validateDescription(FieldDescription, r.Description); err != nil {
		return nil, err
	}
	return &Appointment{id: r.ID, date: r.Date, description: r.Description}, nil
}

func (a *Appointment) Kind() Kind          { return KindAppointment }
func (a *Appointment) ID() string          { return a.id }
func (a *Appointment) Date() time.Time     { return a.date }
func (a *Appointment) Description() string { return a.description }

// NumericID parses the identifier. It fails only for appointments built
// outside a registry with a non-numeric id.
func (a *Appointment) NumericID() (ID, error) {
	return ParseID(a.id)
}

// SetDate replaces the date if it is set and not in the past.
func (a *Appointment) SetDate(date time.Time) error {
	if err := ValidateNotPast(FieldDate, date, time.Now()); err != nil {
		return err
	}
	a.date = date
	return nil
}

// SetDescription replaces the description if it passes validation.
func (a *Appointment) SetDescription(description string) error {
	if err := validateDescription(FieldDescription, description); err != nil {
		return err
	}
	a.description = description
	return nil
}

// Clone returns an independent copy.
func (a *Appointment) Clone() *Appointment {
	c := *a
	return &c
}

// Record returns the serialized form.
func (a *Appointment) Record() AppointmentRecord {
	return AppointmentRecord{ID: a.id, Date: a.date, Description: a.description}
}

func (a *Appointment) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Record())
}

func (a *Appointment) UnmarshalJSON(data []byte) error {
	var r AppointmentRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	restored, err := RestoreAppointment(r)
	if err != nil {
		return err
	}
	*a = *restored
	return nil
}
