package registry

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mesh-intelligence/agenda/internal/memory"
	"github.com/mesh-intelligence/agenda/internal/sqlite"
	"github.com/mesh-intelligence/agenda/pkg/types"
)

// RegistrySuite runs the registry contract against one table backend.
type RegistrySuite struct {
	suite.Suite
	newTables func(t *testing.T) Tables
	set       *Set
}

func (s *RegistrySuite) SetupTest() {
	set, err := NewSet(s.newTables(s.T()), nil)
	s.Require().NoError(err)
	s.set = set
	s.T().Cleanup(func() { set.Close() })
}

func TestMemoryRegistrySuite(t *testing.T) {
	suite.Run(t, &RegistrySuite{newTables: func(t *testing.T) Tables { return Tables{} }})
}

func TestSQLiteRegistrySuite(t *testing.T) {
	suite.Run(t, &RegistrySuite{newTables: func(t *testing.T) Tables {
		b := sqlite.NewBackend()
		require.NoError(t, b.Attach())
		return Tables{
			Appointments: sqlite.NewTable[*types.Appointment](b, types.KindAppointment),
			Contacts:     sqlite.NewTable[*types.Contact](b, types.KindContact),
			Tasks:        sqlite.NewTable[*types.Task](b, types.KindTask),
			Closer:       b,
		}
	}})
}

func futureDate() time.Time {
	return time.Now().AddDate(1, 0, 0).Truncate(time.Second)
}

func (s *RegistrySuite) requireLen(want int, lenFn func() (int, error)) {
	n, err := lenFn()
	s.Require().NoError(err)
	s.Equal(want, n)
}

// TestAppointmentLifecycle covers add, sequential ids, and delete.
func (s *RegistrySuite) TestAppointmentLifecycle() {
	appts := s.set.Appointments
	date := futureDate()
	s.requireLen(0, appts.Len)

	a, err := appts.Add(date, "This is a good description")
	s.Require().NoError(err)
	s.Equal("0", a.ID())

	stored, err := appts.Get("0")
	s.Require().NoError(err)
	s.True(date.Equal(stored.Date()))
	s.Equal("This is a good description", stored.Description())

	for _, want := range []string{"1", "2"} {
		a, err := appts.Add(date, "This is a good description")
		s.Require().NoError(err)
		s.Equal(want, a.ID())
	}
	s.requireLen(3, appts.Len)

	s.Require().NoError(appts.Delete("1"))
	s.requireLen(2, appts.Len)
	_, err = appts.Get("1")
	s.ErrorIs(err, types.ErrNotFound)
	for _, id := range []string{"0", "2"} {
		_, err := appts.Get(id)
		s.NoError(err, "id %s should remain", id)
	}
}

func (s *RegistrySuite) TestFailedAddConsumesNoID() {
	appts := s.set.Appointments

	_, err := appts.Add(futureDate(), "")
	s.ErrorIs(err, types.ErrInvalidField)
	_, err = appts.Add(time.Now().Add(-time.Hour), "past")
	s.Equal(types.ReasonInThePast, types.ReasonOf(err))
	_, err = appts.Add(futureDate(), "<script>")
	s.ErrorIs(err, types.ErrInvalidField)

	s.requireLen(0, appts.Len)
	s.Equal(types.ID(0), appts.NextID())

	a, err := appts.Add(futureDate(), "first valid")
	s.Require().NoError(err)
	s.Equal("0", a.ID())

	_, err = s.set.Contacts.Add("John", "Smith", "123", "123 Main Street")
	s.Equal(types.ReasonWrongLength, types.ReasonOf(err))
	c, err := s.set.Contacts.Add("John", "Smith", "1234567891", "123 Main Street")
	s.Require().NoError(err)
	s.Equal("0", c.ID())

	_, err = s.set.Tasks.Add("", "d")
	s.ErrorIs(err, types.ErrInvalidField)
	t, err := s.set.Tasks.Add("n", "d")
	s.Require().NoError(err)
	s.Equal("0", t.ID())
}

func (s *RegistrySuite) TestIDsNeverReused() {
	tasks := s.set.Tasks
	for i := 0; i < 3; i++ {
		_, err := tasks.Add("n", "d")
		s.Require().NoError(err)
	}
	s.Require().NoError(tasks.Delete("2"))
	s.Require().NoError(tasks.Delete("0"))

	t, err := tasks.Add("n", "d")
	s.Require().NoError(err)
	s.Equal("3", t.ID())

	all, err := tasks.List()
	s.Require().NoError(err)
	ids := make([]string, 0, len(all))
	for _, t := range all {
		ids = append(ids, t.ID())
	}
	s.Equal([]string{"1", "3"}, ids)
}

func (s *RegistrySuite) TestDeleteAbsentIsNoOp() {
	tasks := s.set.Tasks
	_, err := tasks.Add("n", "d")
	s.Require().NoError(err)

	s.NoError(tasks.Delete("42"))
	s.NoError(tasks.Delete(""))
	s.requireLen(1, tasks.Len)

	s.Require().NoError(tasks.Delete("0"))
	s.NoError(tasks.Delete("0"), "second delete of the same id")
	s.requireLen(0, tasks.Len)
}

func (s *RegistrySuite) TestEditAbsentIsNoOp() {
	s.NoError(s.set.Appointments.EditDate("7", futureDate()))
	s.NoError(s.set.Appointments.EditDescription("7", "x"))
	s.NoError(s.set.Contacts.EditFirstName("7", "x"))
	s.NoError(s.set.Contacts.EditLastName("7", "x"))
	s.NoError(s.set.Contacts.EditPhone("7", "x"))
	s.NoError(s.set.Contacts.EditAddress("7", "x"))
	s.NoError(s.set.Tasks.EditName("7", "x"))
	s.NoError(s.set.Tasks.EditDescription("7", "x"))
	s.NoError(s.set.Tasks.EditTask("7", "x", "y"))

	s.requireLen(0, s.set.Appointments.Len)
	s.requireLen(0, s.set.Contacts.Len)
	s.requireLen(0, s.set.Tasks.Len)
}

func (s *RegistrySuite) TestAppointmentEdits() {
	appts := s.set.Appointments
	date := futureDate()
	_, err := appts.Add(date, "Dentist")
	s.Require().NoError(err)

	later := date.AddDate(0, 1, 0)
	s.Require().NoError(appts.EditDate("0", later))
	s.Require().NoError(appts.EditDescription("0", "Dentist, moved"))

	s.ErrorIs(appts.EditDate("0", time.Now().Add(-time.Hour)), types.ErrInvalidField)
	s.ErrorIs(appts.EditDescription("0", "UPDATE appointments"), types.ErrInvalidField)

	a, err := appts.Get("0")
	s.Require().NoError(err)
	s.True(later.Equal(a.Date()))
	s.Equal("Dentist, moved", a.Description())
}

func (s *RegistrySuite) TestContactEdits() {
	contacts := s.set.Contacts
	_, err := contacts.Add("John", "Smith", "1234567891", "123 Main Street")
	s.Require().NoError(err)

	s.Require().NoError(contacts.EditFirstName("0", "Jane"))
	s.Require().NoError(contacts.EditLastName("0", "Doe"))
	s.Require().NoError(contacts.EditPhone("0", "5550001111"))
	s.Require().NoError(contacts.EditAddress("0", "77 Sunset Blvd"))

	s.Equal(types.ReasonTooLong, types.ReasonOf(contacts.EditFirstName("0", "Maximiliana")))
	s.Equal(types.ReasonIllegalCharacter, types.ReasonOf(contacts.EditLastName("0", "D'Arcy")))
	s.Equal(types.ReasonWrongLength, types.ReasonOf(contacts.EditPhone("0", "555")))
	s.Equal(types.ReasonEmpty, types.ReasonOf(contacts.EditAddress("0", "")))

	c, err := contacts.Get("0")
	s.Require().NoError(err)
	s.Equal(types.ContactRecord{
		ID:        "0",
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     "5550001111",
		Address:   "77 Sunset Blvd",
	}, c.Record())
}

// TestEditTaskRejectsBlacklistedDescription checks that a combined edit is
// all-or-nothing.
func (s *RegistrySuite) TestEditTaskRejectsBlacklistedDescription() {
	tasks := s.set.Tasks
	t, err := tasks.Add("John Smith", "Lorem ipsum dolor sit amet.")
	s.Require().NoError(err)
	s.Equal("0", t.ID())

	err = tasks.EditTask("0", "Jane Doe", "DROP TABLE tasks")
	s.Equal(types.ReasonBlacklistedSubstring, types.ReasonOf(err))

	got, err := tasks.Get("0")
	s.Require().NoError(err)
	s.Equal("John Smith", got.Name())
	s.Equal("Lorem ipsum dolor sit amet.", got.Description())

	s.Require().NoError(tasks.EditTask("0", "Jane Doe", "Consectetur adipiscing."))
	s.Require().NoError(tasks.EditName("0", "Janet Doe"))
	s.Require().NoError(tasks.EditDescription("0", "Sed do eiusmod."))
	got, err = tasks.Get("0")
	s.Require().NoError(err)
	s.Equal("Janet Doe", got.Name())
	s.Equal("Sed do eiusmod.", got.Description())
}

func (s *RegistrySuite) TestReturnedEntitiesAreCopies() {
	tasks := s.set.Tasks
	added, err := tasks.Add("n", "d")
	s.Require().NoError(err)
	s.Require().NoError(added.SetName("changed"))

	got, err := tasks.Get("0")
	s.Require().NoError(err)
	s.Equal("n", got.Name())
}

func (s *RegistrySuite) TestConcurrentAdds() {
	tasks := s.set.Tasks
	const n = 50

	var wg sync.WaitGroup
	ids := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Every third add fails validation.
			name := fmt.Sprintf("task %d", i)
			if i%3 == 0 {
				name = ""
			}
			t, err := tasks.Add(name, "d")
			if err == nil {
				ids <- t.ID()
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		s.False(seen[id], "duplicate id %s", id)
		seen[id] = true
	}

	// Failed adds leave no gaps: ids are exactly 0..len-1.
	for i := 0; i < len(seen); i++ {
		s.True(seen[types.ID(i).String()], "missing id %d", i)
	}
	s.requireLen(len(seen), tasks.Len)
}

func TestRegistryResumesAfterExistingIDs(t *testing.T) {
	table := memory.NewTable[*types.Task]()
	for _, id := range []string{"0", "4", "legacy"} {
		task, err := types.NewTask(id, "n", "d")
		require.NoError(t, err)
		require.NoError(t, table.Set(task))
	}

	tasks, err := NewTaskRegistry(table, nil)
	require.NoError(t, err)
	assert.Equal(t, types.ID(5), tasks.NextID())

	task, err := tasks.Add("n", "d")
	require.NoError(t, err)
	assert.Equal(t, "5", task.ID())
}

// failingTable accepts reads but rejects writes.
type failingTable struct {
	*memory.Table[*types.Task]
}

var errWrite = errors.New("write refused")

func (failingTable) Set(*types.Task) error { return errWrite }

func TestAddTableFailureConsumesNoID(t *testing.T) {
	tasks, err := NewTaskRegistry(failingTable{memory.NewTable[*types.Task]()}, nil)
	require.NoError(t, err)

	_, err = tasks.Add("n", "d")
	assert.ErrorIs(t, err, errWrite)
	assert.Equal(t, types.ID(0), tasks.NextID())
}

func TestRegistryLogsMutations(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tasks, err := NewTaskRegistry(nil, logger)
	require.NoError(t, err)

	_, err = tasks.Add("n", "d")
	require.NoError(t, err)
	require.NoError(t, tasks.EditName("0", "m"))
	require.NoError(t, tasks.Delete("0"))

	out := buf.String()
	assert.Contains(t, out, "entity added")
	assert.Contains(t, out, "entity edited")
	assert.Contains(t, out, "op=edit_name")
	assert.Contains(t, out, "entity deleted")
	assert.Contains(t, out, "kind=task")

	buf.Reset()
	_, err = tasks.Add("", "d")
	require.Error(t, err)
	assert.False(t, strings.Contains(buf.String(), "level="), "validation failures are not logged")
}
