// Package memory implements the default in-process Table backend.
package memory

import (
	"sync"

	"github.com/mesh-intelligence/agenda/pkg/types"
)

// Table stores entity copies in a map and remembers insertion order.
type Table[E types.Entity[E]] struct {
	mu      sync.RWMutex
	entries map[string]E
	order   []string
}

// Compile-time interface checks.
var (
	_ types.Table[*types.Appointment] = (*Table[*types.Appointment])(nil)
	_ types.Table[*types.Contact]     = (*Table[*types.Contact])(nil)
	_ types.Table[*types.Task]        = (*Table[*types.Task])(nil)
)

// NewTable returns an empty table.
func NewTable[E types.Entity[E]]() *Table[E] {
	return &Table[E]{entries: make(map[string]E)}
}

func (t *Table[E]) Get(id string) (E, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.entries[id]
	if !ok {
		var zero E
		return zero, types.ErrNotFound
	}
	return e.Clone(), nil
}

func (t *Table[E]) Set(e E) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := e.ID()
	if _, ok := t.entries[id]; !ok {
		t.order = append(t.order, id)
	}
	t.entries[id] = e.Clone()
	return nil
}

func (t *Table[E]) Delete(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.entries[id]; !ok {
		return types.ErrNotFound
	}
	delete(t.entries, id)
	for i, oid := range t.order {
		if oid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

func (t *Table[E]) Fetch() ([]E, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]E, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.entries[id].Clone())
	}
	return out, nil
}

func (t *Table[E]) Len() (int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries), nil
}
