package batch

import (
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/agenda/pkg/registry"
	"github.com/mesh-intelligence/agenda/pkg/types"
)

// Result reports the outcome of one operation.
type Result struct {
	Line   int          `json:"line"`
	Op     string       `json:"op"`
	Kind   types.Kind   `json:"kind"`
	ID     string       `json:"id,omitempty"`
	Error  string       `json:"error,omitempty"`
	Field  string       `json:"field,omitempty"`
	Reason types.Reason `json:"reason,omitempty"`

	err error
}

// Err returns the error the operation failed with, or nil.
func (r Result) Err() error {
	return r.err
}

func newResult(op Op, id string, err error) Result {
	res := Result{Line: op.Line, Op: op.Op, Kind: op.Kind, ID: id, err: err}
	if err != nil {
		res.Error = err.Error()
		var fe *types.InvalidFieldError
		if errors.As(err, &fe) {
			res.Field = fe.Field
			res.Reason = fe.Reason
		}
	}
	return res
}

// Run applies ops in order. Unless keepGoing is set it stops after the first
// failed operation. The returned count is the number of failures.
func Run(set *registry.Set, ops []Op, keepGoing bool) ([]Result, int) {
	results := make([]Result, 0, len(ops))
	failed := 0
	for _, op := range ops {
		res := Apply(set, op)
		results = append(results, res)
		if res.err != nil {
			failed++
			if !keepGoing {
				break
			}
		}
	}
	return results, failed
}

// Apply runs a single operation against set.
func Apply(set *registry.Set, op Op) Result {
	if err := op.check(); err != nil {
		return newResult(op, op.ID, err)
	}

	switch op.Kind {
	case types.KindAppointment:
		return applyAppointment(set.Appointments, op)
	case types.KindContact:
		return applyContact(set.Contacts, op)
	default:
		return applyTask(set.Tasks, op)
	}
}

func applyAppointment(r *registry.AppointmentRegistry, op Op) Result {
	switch op.Op {
	case OpAdd:
		var date time.Time
		if op.Date != nil {
			date = *op.Date
		}
		a, err := r.Add(date, deref(op.Description))
		if err != nil {
			return newResult(op, "", err)
		}
		return newResult(op, a.ID(), nil)
	case OpDelete:
		return newResult(op, op.ID, r.Delete(op.ID))
	}

	if op.Date != nil {
		if err := r.EditDate(op.ID, *op.Date); err != nil {
			return newResult(op, op.ID, err)
		}
	}
	if op.Description != nil {
		if err := r.EditDescription(op.ID, *op.Description); err != nil {
			return newResult(op, op.ID, err)
		}
	}
	return newResult(op, op.ID, nil)
}

func applyContact(r *registry.ContactRegistry, op Op) Result {
	switch op.Op {
	case OpAdd:
		c, err := r.Add(deref(op.FirstName), deref(op.LastName), deref(op.Phone), deref(op.Address))
		if err != nil {
			return newResult(op, "", err)
		}
		return newResult(op, c.ID(), nil)
	case OpDelete:
		return newResult(op, op.ID, r.Delete(op.ID))
	}

	edits := []struct {
		value *string
		edit  func(id, v string) error
	}{
		{op.FirstName, r.EditFirstName},
		{op.LastName, r.EditLastName},
		{op.Phone, r.EditPhone},
		{op.Address, r.EditAddress},
	}
	for _, e := range edits {
		if e.value == nil {
			continue
		}
		if err := e.edit(op.ID, *e.value); err != nil {
			return newResult(op, op.ID, err)
		}
	}
	return newResult(op, op.ID, nil)
}

func applyTask(r *registry.TaskRegistry, op Op) Result {
	switch op.Op {
	case OpAdd:
		t, err := r.Add(deref(op.Name), deref(op.Description))
		if err != nil {
			return newResult(op, "", err)
		}
		return newResult(op, t.ID(), nil)
	case OpDelete:
		return newResult(op, op.ID, r.Delete(op.ID))
	}

	var err error
	switch {
	case op.Name != nil && op.Description != nil:
		err = r.EditTask(op.ID, *op.Name, *op.Description)
	case op.Name != nil:
		err = r.EditName(op.ID, *op.Name)
	default:
		err = r.EditDescription(op.ID, *op.Description)
	}
	return newResult(op, op.ID, err)
}

// State is the full contents of a registry set.
type State struct {
	Appointments []*types.Appointment `json:"appointments"`
	Contacts     []*types.Contact     `json:"contacts"`
	Tasks        []*types.Task        `json:"tasks"`
}

// Snapshot lists every registry of set.
func Snapshot(set *registry.Set) (State, error) {
	var st State
	var err error
	if st.Appointments, err = set.Appointments.List(); err != nil {
		return State{}, fmt.Errorf("listing appointments: %w", err)
	}
	if st.Contacts, err = set.Contacts.List(); err != nil {
		return State{}, fmt.Errorf("listing contacts: %w", err)
	}
	if st.Tasks, err = set.Tasks.List(); err != nil {
		return State{}, fmt.Errorf("listing tasks: %w", err)
	}
	return st, nil
}
