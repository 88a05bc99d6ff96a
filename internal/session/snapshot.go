package session

import (
	"github.com/zjrosen/venom/internal/codec"
	"github.com/zjrosen/venom/internal/task"
	"github.com/zjrosen/venom/internal/textbuffer"
	"github.com/zjrosen/venom/internal/view"
)

// Row is one task as the renderer sees it.
type Row struct {
	ID         string
	Title      string
	Selected   bool
	Done       bool
	Priority   task.Priority
	LabelCode  string
	LabelName  string
	LabelColor task.Color
	DueDate    string
	DueTime    string
}

// Field is one property of the task being edited with its encoded value.
type Field struct {
	Property codec.Property
	Value    string
}

// Editor describes the open text buffer.
type Editor struct {
	Lines        []string
	Mode         textbuffer.Mode
	Cursor       textbuffer.Position
	CursorColumn int
}

// Snapshot is a read-only copy of everything the renderer needs.
type Snapshot struct {
	State    State
	Rows     []Row
	Selected int
	Policy   view.Policy
	// Filter is the active label filter code without padding.
	Filter string
	// Notes of the selected task.
	Notes string

	// Task editor, set in EditingTask.
	Property codec.Property
	Focus    Focus
	Fields   []Field

	// Editor is set in EditingTask and EditingLabels.
	Editor *Editor
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:    s.state,
		Selected: s.selected,
		Policy:   s.view.Policy(),
		Rows:     make([]Row, 0, s.view.Len()),
	}
	if f := s.view.Filter(); f != "" {
		if l := s.store.LabelByCode(f); l != nil {
			snap.Filter = l.ShortCode()
		}
	}

	for i, t := range s.view.Tasks() {
		row := Row{
			ID:       t.ID,
			Title:    t.Title,
			Selected: i == s.selected,
			Done:     t.Done,
			Priority: t.Priority,
		}
		row.DueDate, row.DueTime = codec.FormatDue(t.Due)
		if l := s.store.LabelOf(t); l != nil {
			row.LabelCode = l.ShortCode()
			row.LabelName = l.Name
			row.LabelColor = l.Color
		}
		snap.Rows = append(snap.Rows, row)
	}
	if cur := s.Current(); cur != nil {
		snap.Notes = cur.Notes
	}

	switch s.state {
	case EditingTask:
		snap.Property = s.property
		snap.Focus = s.focus
		for _, p := range codec.Properties {
			snap.Fields = append(snap.Fields, Field{Property: p, Value: s.codec.Encode(s.target, p)})
		}
		snap.Editor = s.editor()
	case EditingLabels:
		snap.Editor = s.editor()
	}
	return snap
}

func (s *Session) editor() *Editor {
	return &Editor{
		Lines:        append([]string(nil), s.buffer.Lines()...),
		Mode:         s.buffer.Mode(),
		Cursor:       s.buffer.Cursor(),
		CursorColumn: s.buffer.CursorColumn(),
	}
}
