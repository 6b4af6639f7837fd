// Package sqlite implements a Table backend on a private in-memory SQLite
// database. Nothing is written to disk; the database is dropped on Detach.
package sqlite

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/agenda/pkg/types"
)

// Backend owns one in-memory database shared by every Table created on it.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	name     string
	db       *sql.DB
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach to open the database.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach opens a uniquely named shared-cache in-memory database and creates
// the schema. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	name := "agenda-" + generateUUID()
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	// A single connection keeps the in-memory database alive and serializes
	// statements.
	db.SetMaxOpenConns(1)

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	b.db = db
	b.name = name
	b.attached = true
	return nil
}

// Detach closes the database, discarding its contents. Idempotent.
// After Detach, table operations return ErrBackendDetached.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	b.attached = false
	b.name = ""
	db := b.db
	b.db = nil
	if err := db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// Close is Detach under the io.Closer name.
func (b *Backend) Close() error {
	return b.Detach()
}

// withDB runs fn while holding the read lock so Detach cannot close the
// database mid-statement.
func (b *Backend) withDB(fn func(db *sql.DB) error) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrBackendDetached
	}
	return fn(b.db)
}

// generateUUID generates a UUID v7 for database names.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
