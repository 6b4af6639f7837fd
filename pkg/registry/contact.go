package registry

import (
	"log/slog"

	"github.com/mesh-intelligence/agenda/pkg/types"
)

// ContactRegistry owns the contacts of one process.
type ContactRegistry struct {
	*registry[*types.Contact]
}

// NewContactRegistry returns a registry over table. A nil table selects an
// in-memory table; a nil logger discards log output.
func NewContactRegistry(table types.Table[*types.Contact], logger *slog.Logger) (*ContactRegistry, error) {
	core, err := newRegistry(types.KindContact, table, logger)
	if err != nil {
		return nil, err
	}
	return &ContactRegistry{core}, nil
}

// Add registers a new contact under the next identifier.
func (r *ContactRegistry) Add(firstName, lastName, phone, address string) (*types.Contact, error) {
	return r.add(func(id string) (*types.Contact, error) {
		return types.NewContact(id, firstName, lastName, phone, address)
	})
}

func (r *ContactRegistry) EditFirstName(id, firstName string) error {
	return r.edit("edit_first_name", id, func(c *types.Contact) error {
		return c.SetFirstName(firstName)
	})
}

func (r *ContactRegistry) EditLastName(id, lastName string) error {
	return r.edit("edit_last_name", id, func(c *types.Contact) error {
		return c.SetLastName(lastName)
	})
}

func (r *ContactRegistry) EditPhone(id, phone string) error {
	return r.edit("edit_phone", id, func(c *types.Contact) error {
		return c.SetPhone(phone)
	})
}

func (r *ContactRegistry) EditAddress(id, address string) error {
	return r.edit("edit_address", id, func(c *types.Contact) error {
		return c.SetAddress(address)
	})
}
