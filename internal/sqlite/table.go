package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/agenda/pkg/types"
)

// Table stores one entity kind in the records table of its backend.
type Table[E types.Entity[E]] struct {
	backend *Backend
	kind    types.Kind
}

// Compile-time interface checks.
var (
	_ types.Table[*types.Appointment] = (*Table[*types.Appointment])(nil)
	_ types.Table[*types.Contact]     = (*Table[*types.Contact])(nil)
	_ types.Table[*types.Task]        = (*Table[*types.Task])(nil)
)

// NewTable returns the table for kind on backend. Entities are hydrated from
// JSON, so E's UnmarshalJSON revalidates every stored record.
func NewTable[E types.Entity[E]](backend *Backend, kind types.Kind) *Table[E] {
	return &Table[E]{backend: backend, kind: kind}
}

func (t *Table[E]) Get(id string) (E, error) {
	var e E
	err := t.backend.withDB(func(db *sql.DB) error {
		var data string
		err := db.QueryRow(
			"SELECT data FROM records WHERE kind = ? AND id = ?",
			string(t.kind), id,
		).Scan(&data)
		if errors.Is(err, sql.ErrNoRows) {
			return types.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("getting %s %s: %w", t.kind, id, err)
		}
		e, err = decode[E](data)
		return err
	})
	if err != nil {
		var zero E
		return zero, err
	}
	return e, nil
}

// Set upserts e. ON CONFLICT DO UPDATE keeps the row's rowid, so a
// replaced entity keeps its Fetch position.
func (t *Table[E]) Set(e E) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding %s %s: %w", t.kind, e.ID(), err)
	}
	return t.backend.withDB(func(db *sql.DB) error {
		_, err := db.Exec(
			`INSERT INTO records (kind, id, data) VALUES (?, ?, ?)
			 ON CONFLICT (kind, id) DO UPDATE SET data = excluded.data`,
			string(t.kind), e.ID(), string(data),
		)
		if err != nil {
			return fmt.Errorf("persisting %s %s: %w", t.kind, e.ID(), err)
		}
		return nil
	})
}

func (t *Table[E]) Delete(id string) error {
	return t.backend.withDB(func(db *sql.DB) error {
		res, err := db.Exec("DELETE FROM records WHERE kind = ? AND id = ?", string(t.kind), id)
		if err != nil {
			return fmt.Errorf("deleting %s %s: %w", t.kind, id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("deleting %s %s: %w", t.kind, id, err)
		}
		if n == 0 {
			return types.ErrNotFound
		}
		return nil
	})
}

func (t *Table[E]) Fetch() ([]E, error) {
	var out []E
	err := t.backend.withDB(func(db *sql.DB) error {
		rows, err := db.Query("SELECT data FROM records WHERE kind = ? ORDER BY rowid", string(t.kind))
		if err != nil {
			return fmt.Errorf("fetching %s records: %w", t.kind, err)
		}
		defer rows.Close()

		for rows.Next() {
			var data string
			if err := rows.Scan(&data); err != nil {
				return fmt.Errorf("scanning %s record: %w", t.kind, err)
			}
			e, err := decode[E](data)
			if err != nil {
				return err
			}
			out = append(out, e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []E{}
	}
	return out, nil
}

func (t *Table[E]) Len() (int, error) {
	var n int
	err := t.backend.withDB(func(db *sql.DB) error {
		if err := db.QueryRow("SELECT COUNT(*) FROM records WHERE kind = ?", string(t.kind)).Scan(&n); err != nil {
			return fmt.Errorf("counting %s records: %w", t.kind, err)
		}
		return nil
	})
	return n, err
}

// decode hydrates a record. For pointer entity types json.Unmarshal
// allocates the value and calls its UnmarshalJSON.
func decode[E any](data string) (E, error) {
	var e E
	if err := json.Unmarshal([]byte(data), &e); err != nil {
		return e, fmt.Errorf("decoding record: %w", err)
	}
	return e, nil
}
