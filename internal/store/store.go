// Package store holds the authoritative task and label lists and keeps the
// references between them consistent.
package store

import (
	"slices"
	"time"

	"github.com/zjrosen/venom/internal/log"
	"github.com/zjrosen/venom/internal/task"
)

// Store owns tasks and labels in insertion order. Task pointers returned by
// AddTask stay valid handles until RemoveTask.
type Store struct {
	tasks  []*task.Task
	labels []*task.Label
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Tasks returns the task list. Callers must not modify the slice.
func (s *Store) Tasks() []*task.Task {
	return s.tasks
}

// Labels returns the label list. Callers must not modify the slice.
func (s *Store) Labels() []*task.Label {
	return s.labels
}

// AddTask appends t and returns it as the handle. A label code that does not
// resolve is cleared.
func (s *Store) AddTask(t *task.Task) *task.Task {
	if t.LabelCode != "" && s.LabelByCode(t.LabelCode) == nil {
		t.LabelCode = ""
	}
	s.tasks = append(s.tasks, t)
	log.Debug(log.CatStore, "task added", "id", t.ID, "count", len(s.tasks))
	return t
}

// RemoveTask removes t by identity. Unknown handles are ignored.
func (s *Store) RemoveTask(t *task.Task) {
	i := slices.Index(s.tasks, t)
	if i < 0 {
		return
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	log.Debug(log.CatStore, "task removed", "id", t.ID, "count", len(s.tasks))
}

// TaskByID finds a task by its ID.
func (s *Store) TaskByID(id string) *task.Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// AddLabel appends l with its code normalized. Codes are unique: if a label
// with the same code exists it takes l's name and color and is returned.
func (s *Store) AddLabel(l *task.Label) *task.Label {
	l.Code = task.NormalizeCode(l.Code)
	if existing := s.LabelByCode(l.Code); existing != nil {
		existing.Name = l.Name
		existing.Color = l.Color
		return existing
	}
	s.labels = append(s.labels, l)
	log.Debug(log.CatStore, "label added", "code", l.Code)
	return l
}

// RemoveLabel removes the label with code and clears it from every task.
// Unknown codes are ignored.
func (s *Store) RemoveLabel(code string) {
	code = task.NormalizeCode(code)
	i := slices.IndexFunc(s.labels, func(l *task.Label) bool { return l.Code == code })
	if i < 0 {
		return
	}
	s.labels = slices.Delete(s.labels, i, i+1)

	cleared := 0
	for _, t := range s.tasks {
		if t.LabelCode == code {
			t.LabelCode = ""
			cleared++
		}
	}
	log.Debug(log.CatStore, "label removed", "code", code, "tasks_cleared", cleared)
}

// LabelByCode returns the label whose code equals the normalized code.
func (s *Store) LabelByCode(code string) *task.Label {
	code = task.NormalizeCode(code)
	for _, l := range s.labels {
		if l.Code == code {
			return l
		}
	}
	return nil
}

// LabelOf resolves t's label reference.
func (s *Store) LabelOf(t *task.Task) *task.Label {
	if t.LabelCode == "" {
		return nil
	}
	return s.LabelByCode(t.LabelCode)
}

// SetTaskLabel points t at the label with code, or clears the reference when
// no such label exists.
func (s *Store) SetTaskLabel(t *task.Task, code string) {
	if l := s.LabelByCode(code); l != nil {
		t.LabelCode = l.Code
		return
	}
	t.LabelCode = ""
}

// ResolveLabels re-resolves every task's label through the store, clearing
// references that no longer exist. It returns the number of tasks cleared.
func (s *Store) ResolveLabels() int {
	cleared := 0
	for _, t := range s.tasks {
		if t.LabelCode == "" {
			continue
		}
		if l := s.LabelByCode(t.LabelCode); l != nil {
			t.LabelCode = l.Code
			continue
		}
		t.LabelCode = ""
		cleared++
	}
	return cleared
}

// SortTasks orders tasks with incomplete ones first, each group by due date.
// A task without a due date compares as due at now. The sort is stable.
func (s *Store) SortTasks(now time.Time) {
	slices.SortStableFunc(s.tasks, func(a, b *task.Task) int {
		if a.Done != b.Done {
			if !a.Done {
				return -1
			}
			return 1
		}
		return CompareDue(a, b, now)
	})
}

// CompareDue orders two tasks by due date, treating an absent date as now.
func CompareDue(a, b *task.Task, now time.Time) int {
	return a.DueOr(now).Compare(b.DueOr(now))
}
