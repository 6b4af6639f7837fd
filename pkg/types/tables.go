package types

import "fmt"

// Kind names an entity kind. Kinds double as SQLite record partitions and
// operation-script kind values.
type Kind string

// Entity kinds.
const (
	KindAppointment Kind = "appointment"
	KindContact     Kind = "contact"
	KindTask        Kind = "task"
)

// Kinds lists every entity kind for enumeration.
var Kinds = []Kind{
	KindAppointment,
	KindContact,
	KindTask,
}

// ParseKind returns the Kind named by s.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown kind %q", s)
}
