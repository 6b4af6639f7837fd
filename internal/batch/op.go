// Package batch reads operation scripts and applies them to a registry set.
//
// A script is JSONL: one operation object per line, blank lines skipped.
//
//	{"op":"add","kind":"task","name":"Write report","description":"Q3 numbers"}
//	{"op":"edit","kind":"task","id":"0","description":"Q3 and Q4 numbers"}
//	{"op":"delete","kind":"task","id":"0"}
package batch

import (
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/agenda/pkg/types"
)

// Operation names.
const (
	OpAdd    = "add"
	OpDelete = "delete"
	OpEdit   = "edit"
)

// ErrInvalidOp reports a script line that is well-formed JSON but not a
// usable operation.
var ErrInvalidOp = errors.New("invalid operation")

// Op is one script operation. Field values are pointers so an absent field
// can be told apart from an empty one: edit touches only present fields, and
// add passes absent fields to validation as empty.
type Op struct {
	Op          string     `json:"op"`
	Kind        types.Kind `json:"kind"`
	ID          string     `json:"id,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Description *string    `json:"description,omitempty"`
	Name        *string    `json:"name,omitempty"`
	FirstName   *string    `json:"first_name,omitempty"`
	LastName    *string    `json:"last_name,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	Address     *string    `json:"address,omitempty"`

	// Line is the 1-based script line the operation came from.
	Line int `json:"-"`
}

// kindFields lists the fields each kind accepts.
var kindFields = map[types.Kind][]string{
	types.KindAppointment: {types.FieldDate, types.FieldDescription},
	types.KindContact:     {types.FieldFirstName, types.FieldLastName, types.FieldPhone, types.FieldAddress},
	types.KindTask:        {types.FieldName, types.FieldDescription},
}

// present returns the names of the fields set on op.
func (op Op) present() []string {
	var names []string
	if op.Date != nil {
		names = append(names, types.FieldDate)
	}
	if op.Description != nil {
		names = append(names, types.FieldDescription)
	}
	if op.Name != nil {
		names = append(names, types.FieldName)
	}
	if op.FirstName != nil {
		names = append(names, types.FieldFirstName)
	}
	if op.LastName != nil {
		names = append(names, types.FieldLastName)
	}
	if op.Phone != nil {
		names = append(names, types.FieldPhone)
	}
	if op.Address != nil {
		names = append(names, types.FieldAddress)
	}
	return names
}

// check verifies the operation's shape. Field values themselves are left to
// entity validation.
func (op Op) check() error {
	allowed, ok := kindFields[op.Kind]
	if !ok {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidOp, op.Kind)
	}

	fields := op.present()
	switch op.Op {
	case OpAdd:
		if op.ID != "" {
			return fmt.Errorf("%w: add assigns the id; got %q", ErrInvalidOp, op.ID)
		}
	case OpDelete:
		if op.ID == "" {
			return fmt.Errorf("%w: delete needs an id", ErrInvalidOp)
		}
		if len(fields) > 0 {
			return fmt.Errorf("%w: delete takes no fields", ErrInvalidOp)
		}
		return nil
	case OpEdit:
		if op.ID == "" {
			return fmt.Errorf("%w: edit needs an id", ErrInvalidOp)
		}
		if len(fields) == 0 {
			return fmt.Errorf("%w: edit needs at least one field", ErrInvalidOp)
		}
	default:
		return fmt.Errorf("%w: unknown op %q", ErrInvalidOp, op.Op)
	}

	for _, f := range fields {
		if !contains(allowed, f) {
			return fmt.Errorf("%w: %s has no field %s", ErrInvalidOp, op.Kind, f)
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
