package registry

import (
	"log/slog"

	"github.com/mesh-intelligence/agenda/pkg/types"
)

// TaskRegistry owns the tasks of one process.
type TaskRegistry struct {
	*registry[*types.Task]
}

// NewTaskRegistry returns a registry over table. A nil table selects an
// in-memory table; a nil logger discards log output.
func NewTaskRegistry(table types.Table[*types.Task], logger *slog.Logger) (*TaskRegistry, error) {
	core, err := newRegistry(types.KindTask, table, logger)
	if err != nil {
		return nil, err
	}
	return &TaskRegistry{core}, nil
}

// Add registers a new task under the next identifier.
func (r *TaskRegistry) Add(name, description string) (*types.Task, error) {
	return r.add(func(id string) (*types.Task, error) {
		return types.NewTask(id, name, description)
	})
}

func (r *TaskRegistry) EditName(id, name string) error {
	return r.edit("edit_name", id, func(t *types.Task) error {
		return t.SetName(name)
	})
}

func (r *TaskRegistry) EditDescription(id, description string) error {
	return r.edit("edit_description", id, func(t *types.Task) error {
		return t.SetDescription(description)
	})
}

// EditTask replaces name and description together. Both are validated
// before either is stored.
func (r *TaskRegistry) EditTask(id, name, description string) error {
	return r.edit("edit_task", id, func(t *types.Task) error {
		return t.Update(name, description)
	})
}
