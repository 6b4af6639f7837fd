package types

import "time"

// FieldErrors validates each field of the record on its own and returns one
// error per failing field. The date is checked against now.
func (r AppointmentRecord) FieldErrors(now time.Time) []error {
	return collect(
		ValidateNotPast(FieldDate, r.Date, now),
		validateDescription(FieldDescription, r.Description),
	)
}

// FieldErrors validates each field of the record on its own and returns one
// error per failing field.
func (r ContactRecord) FieldErrors() []error {
	return collect(
		validateFirstName(r.FirstName),
		validateLastName(r.LastName),
		validatePhone(r.Phone),
		validateAddress(r.Address),
	)
}

// FieldErrors validates each field of the record on its own and returns one
// error per failing field.
func (r TaskRecord) FieldErrors() []error {
	return collect(
		validateTaskName(r.Name),
		validateDescription(FieldDescription, r.Description),
	)
}

func collect(errs ...error) []error {
	var out []error
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}
