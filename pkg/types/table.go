package types

// Entity is implemented by *Appointment, *Contact, and *Task.
type Entity[E any] interface {
	ID() string
	Kind() Kind
	// Clone returns a copy that shares no mutable state with the receiver.
	Clone() E
}

// Table is the keyed collection a registry stores its entities in.
// Implementations hand out copies, so changing a returned entity does not
// change what is stored until it is passed back to Set.
type Table[E Entity[E]] interface {
	// Get returns the entity with the given ID, or ErrNotFound.
	Get(id string) (E, error)

	// Set inserts e under e.ID(), or replaces the entity already stored
	// there without changing its position in Fetch order.
	Set(e E) error

	// Delete removes the entity with the given ID, or returns ErrNotFound.
	Delete(id string) error

	// Fetch returns every entity in insertion order.
	Fetch() ([]E, error)

	// Len returns the number of stored entities.
	Len() (int, error)
}
