package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/agenda/pkg/types"
)

// setupBackend returns an attached backend that is detached on cleanup.
func setupBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend()
	require.NoError(t, b.Attach())
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestBackendLifecycle(t *testing.T) {
	b := NewBackend()
	tbl := NewTable[*types.Task](b, types.KindTask)

	_, err := tbl.Len()
	assert.ErrorIs(t, err, types.ErrBackendDetached, "unattached backend")

	require.NoError(t, b.Attach())
	assert.ErrorIs(t, b.Attach(), types.ErrAlreadyAttached)

	n, err := tbl.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach(), "Detach is idempotent")

	_, err = tbl.Get("0")
	assert.ErrorIs(t, err, types.ErrBackendDetached)
	assert.ErrorIs(t, tbl.Delete("0"), types.ErrBackendDetached)
}

func TestBackendReattachStartsEmpty(t *testing.T) {
	b := NewBackend()
	tbl := NewTable[*types.Task](b, types.KindTask)

	require.NoError(t, b.Attach())
	task, err := types.NewTask("0", "n", "d")
	require.NoError(t, err)
	require.NoError(t, tbl.Set(task))
	require.NoError(t, b.Close())

	require.NoError(t, b.Attach())
	t.Cleanup(func() { b.Detach() })
	n, err := tbl.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestBackendsAreIsolated(t *testing.T) {
	a := setupBackend(t)
	b := setupBackend(t)

	task, err := types.NewTask("0", "n", "d")
	require.NoError(t, err)
	require.NoError(t, NewTable[*types.Task](a, types.KindTask).Set(task))

	n, err := NewTable[*types.Task](b, types.KindTask).Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestTableCRUD(t *testing.T) {
	b := setupBackend(t)
	tbl := NewTable[*types.Contact](b, types.KindContact)

	_, err := tbl.Get("0")
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.ErrorIs(t, tbl.Delete("0"), types.ErrNotFound)

	for _, id := range []string{"0", "1", "2"} {
		c, err := types.NewContact(id, "John", "Smith", "1234567891", "123 Main Street")
		require.NoError(t, err)
		require.NoError(t, tbl.Set(c))
	}

	c, err := tbl.Get("1")
	require.NoError(t, err)
	require.NoError(t, c.SetFirstName("Jane"))
	require.NoError(t, tbl.Set(c))
	require.NoError(t, tbl.Delete("0"))

	all, err := tbl.Fetch()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "1", all[0].ID())
	assert.Equal(t, "Jane", all[0].FirstName())
	assert.Equal(t, "2", all[1].ID())

	n, err := tbl.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestTableKindsArePartitioned(t *testing.T) {
	b := setupBackend(t)
	tasks := NewTable[*types.Task](b, types.KindTask)
	appts := NewTable[*types.Appointment](b, types.KindAppointment)

	task, err := types.NewTask("0", "n", "d")
	require.NoError(t, err)
	require.NoError(t, tasks.Set(task))

	_, err = appts.Get("0")
	assert.ErrorIs(t, err, types.ErrNotFound)

	all, err := appts.Fetch()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTableHydratesPastAppointments(t *testing.T) {
	b := setupBackend(t)
	tbl := NewTable[*types.Appointment](b, types.KindAppointment)

	past := time.Now().AddDate(0, -1, 0).UTC().Truncate(time.Second)
	a, err := types.RestoreAppointment(types.AppointmentRecord{ID: "0", Date: past, Description: "already happened"})
	require.NoError(t, err)
	require.NoError(t, tbl.Set(a))

	got, err := tbl.Get("0")
	require.NoError(t, err)
	assert.True(t, past.Equal(got.Date()))
	assert.Equal(t, "already happened", got.Description())
}

func TestTableRejectsCorruptRecords(t *testing.T) {
	b := setupBackend(t)
	tbl := NewTable[*types.Task](b, types.KindTask)

	_, err := b.db.Exec(
		"INSERT INTO records (kind, id, data) VALUES (?, ?, ?)",
		string(types.KindTask), "0", `{"id":"0","name":"","description":"d"}`,
	)
	require.NoError(t, err)

	_, err = tbl.Get("0")
	assert.ErrorIs(t, err, types.ErrInvalidField)

	_, err = tbl.Fetch()
	assert.ErrorIs(t, err, types.ErrInvalidField)
}
