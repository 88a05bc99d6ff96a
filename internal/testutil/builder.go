// Package testutil builds stores and random data for tests.
package testutil

import (
	"testing"
	"time"

	"github.com/zjrosen/venom/internal/store"
	"github.com/zjrosen/venom/internal/task"
)

// Epoch is the reference "now" used by tests.
var Epoch = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

// Builder accumulates labels and tasks and builds a store from them.
type Builder struct {
	t     *testing.T
	s     *store.Store
	tasks map[string]*task.Task
}

// NewBuilder returns a builder over an empty store.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{t: t, s: store.New(), tasks: make(map[string]*task.Task)}
}

// WithLabel adds a label with a named color.
func (b *Builder) WithLabel(code, name, color string) *Builder {
	b.s.AddLabel(task.NewLabel(code, name, task.NamedColor(color)))
	return b
}

// WithTask adds a task titled title.
func (b *Builder) WithTask(title string, opts ...TaskOption) *Builder {
	t := task.New()
	t.Title = title
	for _, opt := range opts {
		opt(t)
	}
	if t.LabelCode != "" && b.s.LabelByCode(t.LabelCode) == nil {
		b.t.Fatalf("task %q references unknown label %q", title, t.LabelCode)
	}
	b.tasks[title] = b.s.AddTask(t)
	return b
}

// Task returns the task added with title.
func (b *Builder) Task(title string) *task.Task {
	t, ok := b.tasks[title]
	if !ok {
		b.t.Fatalf("no task titled %q", title)
	}
	return t
}

// Build returns the store.
func (b *Builder) Build() *store.Store {
	return b.s
}

// Titles lists task titles in order.
func Titles(tasks []*task.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}
