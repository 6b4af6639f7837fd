// Package registry implements the per-kind collections that own entities:
// they allocate sequential identifiers, insert, remove, and dispatch field
// edits by identifier.
//
// Every registry serializes its operations with a mutex, so the counter and
// table always change together. A failed Add never consumes an identifier,
// and edits or deletes of an unknown identifier are silent no-ops.
package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mesh-intelligence/agenda/internal/memory"
	"github.com/mesh-intelligence/agenda/pkg/types"
)

// registry is the kind-independent core embedded by the exported registries.
type registry[E types.Entity[E]] struct {
	mu     sync.Mutex
	kind   types.Kind
	next   types.ID
	table  types.Table[E]
	logger *slog.Logger
}

// newRegistry wraps table, or a fresh memory table when table is nil. The
// counter resumes after the highest numeric identifier already stored so a
// pre-populated table never sees an identifier reused.
func newRegistry[E types.Entity[E]](kind types.Kind, table types.Table[E], logger *slog.Logger) (*registry[E], error) {
	if table == nil {
		table = memory.NewTable[E]()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	existing, err := table.Fetch()
	if err != nil {
		return nil, fmt.Errorf("loading %s table: %w", kind, err)
	}
	var next types.ID
	for _, e := range existing {
		id, err := types.ParseID(e.ID())
		if err != nil {
			continue
		}
		if id >= next {
			next = id.Next()
		}
	}

	return &registry[E]{
		kind:   kind,
		next:   next,
		table:  table,
		logger: logger.With("kind", string(kind)),
	}, nil
}

// add allocates the next identifier and builds the entity with it. The
// counter advances only once the entity is stored; build errors are
// returned unchanged.
func (r *registry[E]) add(build func(id string) (E, error)) (E, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero E
	id := r.next.String()
	e, err := build(id)
	if err != nil {
		return zero, err
	}
	if err := r.table.Set(e); err != nil {
		return zero, fmt.Errorf("storing %s %s: %w", r.kind, id, err)
	}
	r.next = r.next.Next()

	r.logger.Debug("entity added", "id", id)
	return e.Clone(), nil
}

// edit applies fn to a copy of the stored entity and stores the result.
// An unknown id is a no-op. Errors from fn propagate untranslated and leave
// the stored entity unchanged.
func (r *registry[E]) edit(op, id string, fn func(e E) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.table.Get(id)
	if errors.Is(err, types.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading %s %s: %w", r.kind, id, err)
	}
	if err := fn(e); err != nil {
		return err
	}
	if err := r.table.Set(e); err != nil {
		return fmt.Errorf("storing %s %s: %w", r.kind, id, err)
	}

	r.logger.Debug("entity edited", "id", id, "op", op)
	return nil
}

// Delete removes the entity with the given id. An unknown id is a no-op.
func (r *registry[E]) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.table.Delete(id)
	if errors.Is(err, types.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", r.kind, id, err)
	}

	r.logger.Debug("entity deleted", "id", id)
	return nil
}

// Get returns a copy of the entity with the given id, or ErrNotFound.
func (r *registry[E]) Get(id string) (E, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.table.Get(id)
}

// List returns copies of every entity in insertion order.
func (r *registry[E]) List() ([]E, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.table.Fetch()
}

// Len returns the number of registered entities.
func (r *registry[E]) Len() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.table.Len()
}

// NextID returns the identifier the next successful Add will assign.
func (r *registry[E]) NextID() types.ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.next
}

// Kind returns the entity kind this registry holds.
func (r *registry[E]) Kind() types.Kind {
	return r.kind
}
