package types

import "encoding/json"

// Task is a named unit of work with a description.
type Task struct {
	id          string
	name        string
	description string
}

// TaskRecord is the serialized form of a Task.
type TaskRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewTask validates every field and returns the task.
func NewTask(id, name, description string) (*Task, error) {
	return RestoreTask(TaskRecord{ID: id, Name: name, Description: description})
}

// RestoreTask rebuilds a task from its record under the same rules as NewTask.
func RestoreTask(r TaskRecord) (*Task, error) {
	if err := validateID(r.ID); err != nil {
		return nil, err
	}
	if err := validateTaskName(r.Name); err != nil {
		return nil, err
	}
	if err := validateDescription(FieldDescription, r.Description); err != nil {
		return nil, err
	}
	return &Task{id: r.ID, name: r.Name, description: r.Description}, nil
}

func validateTaskName(v string) error {
	return validateText(FieldName, v, MaxTaskNameLength)
}

func (t *Task) Kind() Kind          { return KindTask }
func (t *Task) ID() string          { return t.id }
func (t *Task) Name() string        { return t.name }
func (t *Task) Description() string { return t.description }

// NumericID parses the identifier. It fails only for tasks built outside a
// registry with a non-numeric id.
func (t *Task) NumericID() (ID, error) {
	return ParseID(t.id)
}

func (t *Task) SetName(name string) error {
	if err := validateTaskName(name); err != nil {
		return err
	}
	t.name = name
	return nil
}

func (t *Task) SetDescription(description string) error {
	if err := validateDescription(FieldDescription, description); err != nil {
		return err
	}
	t.description = description
	return nil
}

// Update validates both values and assigns them together; on failure
// neither field changes.
func (t *Task) Update(name, description string) error {
	if err := validateTaskName(name); err != nil {
		return err
	}
	if err := validateDescription(FieldDescription, description); err != nil {
		return err
	}
	t.name = name
	t.description = description
	return nil
}

// Clone returns an independent copy.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}

// Record returns the serialized form.
func (t *Task) Record() TaskRecord {
	return TaskRecord{ID: t.id, Name: t.name, Description: t.description}
}

func (t *Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Record())
}

func (t *Task) UnmarshalJSON(data []byte) error {
	var r TaskRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	restored, err := RestoreTask(r)
	if err != nil {
		return err
	}
	*t = *restored
	return nil
}
