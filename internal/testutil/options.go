package testutil

import (
	"time"

	"github.com/zjrosen/venom/internal/task"
)

// TaskOption configures a task added through the Builder.
type TaskOption func(*task.Task)

// WithNotes sets the notes.
func WithNotes(notes string) TaskOption {
	return func(t *task.Task) { t.Notes = notes }
}

// WithPriority sets the priority.
func WithPriority(p task.Priority) TaskOption {
	return func(t *task.Task) { t.Priority = p }
}

// WithDue sets the due date.
func WithDue(d time.Time) TaskOption {
	return func(t *task.Task) { t.SetDue(&d) }
}

// WithLabel references the label with code. The label must be added to the
// builder before the task.
func WithLabel(code string) TaskOption {
	return func(t *task.Task) { t.LabelCode = task.NormalizeCode(code) }
}

// Done marks the task completed.
func Done() TaskOption {
	return func(t *task.Task) { t.Done = true }
}

// WithID fixes the task ID.
func WithID(id string) TaskOption {
	return func(t *task.Task) { t.ID = id }
}
