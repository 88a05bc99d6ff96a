// Package task defines the records venom tracks: tasks, labels and their
// priorities and colors.
package task

import (
	"time"

	"github.com/google/uuid"
)

// Task is a single todo item.
type Task struct {
	ID       string
	Title    string
	Notes    string
	Priority Priority
	Due      *time.Time
	Done     bool

	// LabelCode references a label by its normalized code, or is empty.
	// Resolve it through the store on every read.
	LabelCode string
}

// New returns an empty task with a fresh ID.
func New() *Task {
	return &Task{ID: uuid.NewString()}
}

// HasDue reports whether a due date is set.
func (t *Task) HasDue() bool {
	return t.Due != nil
}

// DueOr returns the due date, or now when unset. Unscheduled tasks sort as
// if they were due immediately.
func (t *Task) DueOr(now time.Time) time.Time {
	if t.Due == nil {
		return now
	}
	return *t.Due
}

// SetDue sets the due date. A nil argument clears it.
func (t *Task) SetDue(d *time.Time) {
	if d == nil {
		t.Due = nil
		return
	}
	v := *d
	t.Due = &v
}

// Derive returns a new task carrying over title, notes, due date and label.
// Priority and completion start fresh.
func (t *Task) Derive() *Task {
	n := New()
	n.Title = t.Title
	n.Notes = t.Notes
	n.SetDue(t.Due)
	n.LabelCode = t.LabelCode
	return n
}
