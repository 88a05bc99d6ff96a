package store

import (
	"time"

	"github.com/zjrosen/venom/internal/task"
)

// Document is the persisted form of a store.
type Document struct {
	Tasks  []TaskRecord  `json:"tasks"`
	Labels []LabelRecord `json:"labels"`
}

// TaskRecord is one persisted task. Due is written as RFC 3339 with offset.
type TaskRecord struct {
	ID       string     `json:"id,omitempty"`
	Title    string     `json:"title"`
	Priority string     `json:"priority"`
	Notes    string     `json:"notes"`
	Due      *time.Time `json:"due,omitempty"`
	Label    string     `json:"label,omitempty"`
	Done     bool       `json:"done"`
}

// LabelRecord is one persisted label.
type LabelRecord struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Document snapshots the store.
func (s *Store) Document() Document {
	doc := Document{
		Tasks:  make([]TaskRecord, 0, len(s.tasks)),
		Labels: make([]LabelRecord, 0, len(s.labels)),
	}
	for _, l := range s.labels {
		doc.Labels = append(doc.Labels, LabelRecord{
			Code:  l.ShortCode(),
			Name:  l.Name,
			Color: l.Color.String(),
		})
	}
	for _, t := range s.tasks {
		rec := TaskRecord{
			ID:       t.ID,
			Title:    t.Title,
			Priority: t.Priority.String(),
			Notes:    t.Notes,
			Done:     t.Done,
		}
		if t.Due != nil {
			d := *t.Due
			rec.Due = &d
		}
		if l := s.LabelOf(t); l != nil {
			rec.Label = l.ShortCode()
		}
		doc.Tasks = append(doc.Tasks, rec)
	}
	return doc
}

// FromDocument builds a store from doc. Unknown priorities load as None,
// tasks without an ID get one, and label references that do not resolve
// are dropped.
func FromDocument(doc Document) *Store {
	s := New()
	for _, rec := range doc.Labels {
		s.AddLabel(task.NewLabel(rec.Code, rec.Name, task.ParseColor(rec.Color)))
	}
	for _, rec := range doc.Tasks {
		t := task.New()
		if rec.ID != "" {
			t.ID = rec.ID
		}
		t.Title = rec.Title
		t.Notes = rec.Notes
		t.Priority, _ = task.ParsePriority(rec.Priority)
		t.Done = rec.Done
		t.SetDue(rec.Due)
		if rec.Label != "" {
			s.SetTaskLabel(t, rec.Label)
		}
		s.AddTask(t)
	}
	return s
}
