package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldErrors(t *testing.T) {
	now := time.Now()

	t.Run("appointment reports every field", func(t *testing.T) {
		errs := AppointmentRecord{Date: now.Add(-time.Hour), Description: "SELECT * FROM x"}.FieldErrors(now)
		require.Len(t, errs, 2)
		assert.Equal(t, ReasonInThePast, ReasonOf(errs[0]))
		assert.Equal(t, ReasonBlacklistedSubstring, ReasonOf(errs[1]))
	})

	t.Run("valid appointment", func(t *testing.T) {
		errs := AppointmentRecord{Date: now.Add(time.Hour), Description: "Dentist"}.FieldErrors(now)
		assert.Empty(t, errs)
	})

	t.Run("contact", func(t *testing.T) {
		errs := ContactRecord{FirstName: "John", LastName: "", Phone: "12345", Address: "1 Main St"}.FieldErrors()
		require.Len(t, errs, 2)
		assert.ErrorIs(t, errs[0], ErrInvalidField)
		assert.Equal(t, ReasonEmpty, ReasonOf(errs[0]))
		assert.Equal(t, ReasonWrongLength, ReasonOf(errs[1]))
	})

	t.Run("task", func(t *testing.T) {
		errs := TaskRecord{Name: "a;b", Description: "fine"}.FieldErrors()
		require.Len(t, errs, 1)
		assert.Equal(t, ReasonIllegalCharacter, ReasonOf(errs[0]))
	})
}
