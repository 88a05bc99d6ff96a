// Package view derives the filtered, sorted list of tasks shown to the user.
package view

import (
	"fmt"
	"slices"
	"time"

	"github.com/zjrosen/venom/internal/log"
	"github.com/zjrosen/venom/internal/store"
	"github.com/zjrosen/venom/internal/task"
)

// Policy controls how completed tasks appear in the view.
type Policy int

const (
	// SeparateCompleted keeps completed tasks but moves them to the bottom.
	SeparateCompleted Policy = iota
	// ShowAll mixes completed tasks in by due date.
	ShowAll
	// HideCompleted drops completed tasks.
	HideCompleted
)

// String returns the config name of the policy.
func (p Policy) String() string {
	switch p {
	case ShowAll:
		return "show"
	case HideCompleted:
		return "hide"
	default:
		return "separate"
	}
}

// Title is the label shown in the UI header.
func (p Policy) Title() string {
	switch p {
	case ShowAll:
		return "Show completed"
	case HideCompleted:
		return "Hide completed"
	default:
		return "Completed last"
	}
}

// Next returns the following policy in the cycle
// separate -> show -> hide -> separate.
func (p Policy) Next() Policy {
	switch p {
	case SeparateCompleted:
		return ShowAll
	case ShowAll:
		return HideCompleted
	default:
		return SeparateCompleted
	}
}

// ParsePolicy reads a config name.
func ParsePolicy(s string) (Policy, error) {
	for _, p := range []Policy{SeparateCompleted, ShowAll, HideCompleted} {
		if p.String() == s {
			return p, nil
		}
	}
	return SeparateCompleted, fmt.Errorf("unknown view policy %q (expected separate, show or hide)", s)
}

// Engine holds the view state and the derived task list. The tasks it holds
// are borrowed from a store and are only valid until the next Regenerate.
type Engine struct {
	policy Policy
	filter string
	tasks  []*task.Task
}

// New returns an engine with the given policy and no label filter.
func New(policy Policy) *Engine {
	return &Engine{policy: policy}
}

// Policy returns the completion policy.
func (e *Engine) Policy() Policy { return e.policy }

// SetPolicy replaces the completion policy.
func (e *Engine) SetPolicy(p Policy) { e.policy = p }

// Filter returns the active label filter code, or "" when unfiltered.
func (e *Engine) Filter() string { return e.filter }

// SetFilter sets the label filter. An empty code clears it.
func (e *Engine) SetFilter(code string) {
	if code == "" {
		e.filter = ""
		return
	}
	e.filter = task.NormalizeCode(code)
}

// Tasks returns the derived list.
func (e *Engine) Tasks() []*task.Task { return e.tasks }

// Len returns the number of derived tasks.
func (e *Engine) Len() int { return len(e.tasks) }

// At returns the task at i, or nil when out of range.
func (e *Engine) At(i int) *task.Task {
	if i < 0 || i >= len(e.tasks) {
		return nil
	}
	return e.tasks[i]
}

// IndexOf returns the position of t in the view, or -1.
func (e *Engine) IndexOf(t *task.Task) int {
	return slices.Index(e.tasks, t)
}

// Regenerate derives the view from s. Tasks without a due date sort as if
// due at now. A filter whose label no longer exists is cleared.
func (e *Engine) Regenerate(s *store.Store, now time.Time) {
	if e.filter != "" && s.LabelByCode(e.filter) == nil {
		log.Debug(log.CatView, "label filter cleared", "code", e.filter)
		e.filter = ""
	}

	out := make([]*task.Task, 0, len(s.Tasks()))
	for _, t := range s.Tasks() {
		if e.policy == HideCompleted && t.Done {
			continue
		}
		if e.filter != "" && t.LabelCode != e.filter {
			continue
		}
		out = append(out, t)
	}

	slices.SortStableFunc(out, func(a, b *task.Task) int {
		return store.CompareDue(a, b, now)
	})

	if e.policy == SeparateCompleted {
		pending := make([]*task.Task, 0, len(out))
		var done []*task.Task
		for _, t := range out {
			if t.Done {
				done = append(done, t)
			} else {
				pending = append(pending, t)
			}
		}
		out = append(pending, done...)
	}

	e.tasks = out
}

// CyclePolicy advances the completion policy and returns it.
func (e *Engine) CyclePolicy() Policy {
	e.policy = e.policy.Next()
	return e.policy
}

// CycleLabelFilter advances the filter through s's labels in order:
// none, first, ..., last, none. It returns the new filter code.
func (e *Engine) CycleLabelFilter(s *store.Store) string {
	labels := s.Labels()
	switch {
	case len(labels) == 0:
		e.filter = ""
	case e.filter == "":
		e.filter = labels[0].Code
	default:
		i := slices.IndexFunc(labels, func(l *task.Label) bool { return l.Code == e.filter })
		if i < 0 || i == len(labels)-1 {
			e.filter = ""
		} else {
			e.filter = labels[i+1].Code
		}
	}
	return e.filter
}

// Clamp bounds a selection index to a view of length n.
func Clamp(idx, n int) int {
	if n == 0 || idx < 0 {
		return 0
	}
	if idx > n-1 {
		return n - 1
	}
	return idx
}
