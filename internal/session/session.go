// Package session sequences user commands through the main view, the task
// editor and the label editor, writing edits back into the store.
//
// Commands are processed one at a time. Each commit point (a task field
// leaving edit focus, a label reconciliation, a completion toggle, a
// deletion) saves the store before Apply returns.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/venom/internal/codec"
	"github.com/zjrosen/venom/internal/labeltext"
	"github.com/zjrosen/venom/internal/log"
	"github.com/zjrosen/venom/internal/shared"
	"github.com/zjrosen/venom/internal/store"
	"github.com/zjrosen/venom/internal/task"
	"github.com/zjrosen/venom/internal/textbuffer"
	"github.com/zjrosen/venom/internal/tracing"
	"github.com/zjrosen/venom/internal/view"
)

// State is the top-level interaction state.
type State int

const (
	MainView State = iota
	EditingTask
	EditingLabels
)

func (s State) String() string {
	switch s {
	case EditingTask:
		return "editing_task"
	case EditingLabels:
		return "editing_labels"
	default:
		return "main_view"
	}
}

// Focus is the sub-focus inside the task editor.
type Focus int

const (
	// FocusFields moves between properties.
	FocusFields Focus = iota
	// FocusEdit sends keystrokes to the text buffer.
	FocusEdit
)

func (f Focus) String() string {
	if f == FocusEdit {
		return "edit"
	}
	return "fields"
}

// Persister saves store documents.
type Persister interface {
	Save(ctx context.Context, doc store.Document) error
}

// ErrNoClipboard is returned by CopySelectedTitle when no clipboard is
// configured.
var ErrNoClipboard = errors.New("clipboard unavailable")

// Options configures a Session. Zero values select sensible defaults.
type Options struct {
	Persister   Persister
	Clock       shared.Clock
	Clipboard   shared.Clipboard
	Tracer      trace.Tracer
	Policy      view.Policy
	VimEnabled  bool
	LabelFormat labeltext.Format
	// Location is used for due dates typed on tasks that had none.
	Location *time.Location
}

// Session is the edit state machine.
type Session struct {
	opts   Options
	store  *store.Store
	view   *view.Engine
	codec  *codec.Codec
	buffer *textbuffer.Buffer

	state    State
	selected int
	quit     bool

	// Task editor state, valid in EditingTask.
	property codec.Property
	focus    Focus
	target   *task.Task
	created  bool

	// Label text when the label editor opened.
	labelsBefore string
}

// New returns a session in MainView over s.
func New(s *store.Store, opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = shared.RealClock{}
	}
	if opts.Tracer == nil {
		opts.Tracer = noop.NewTracerProvider().Tracer("noop")
	}

	sess := &Session{
		opts:   opts,
		view:   view.New(opts.Policy),
		buffer: textbuffer.New(textbuffer.Config{VimEnabled: opts.VimEnabled}),
	}
	sess.attach(s)
	sess.refresh()
	return sess
}

func (s *Session) attach(st *store.Store) {
	s.store = st
	s.codec = codec.New(st)
	if s.opts.Location != nil {
		s.codec.Location = s.opts.Location
	}
	st.SortTasks(s.opts.Clock.Now())
}

// Store returns the record store.
func (s *Session) Store() *store.Store { return s.store }

// View returns the view engine.
func (s *Session) View() *view.Engine { return s.view }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Selected returns the selected view index.
func (s *Session) Selected() int { return s.selected }

// Quitting reports whether Quit was received.
func (s *Session) Quitting() bool { return s.quit }

// Current returns the selected task, or nil when the view is empty.
func (s *Session) Current() *task.Task { return s.view.At(s.selected) }

// Target returns the task being edited, or nil outside EditingTask.
func (s *Session) Target() *task.Task {
	if s.state != EditingTask {
		return nil
	}
	return s.target
}

// Select moves the selection to idx, clamped to the view.
func (s *Session) Select(idx int) {
	if s.state == MainView {
		s.selected = view.Clamp(idx, s.view.Len())
	}
}

// Apply processes one command. The returned error reports a failed save or
// clipboard write; the state change itself has already happened.
func (s *Session) Apply(ctx context.Context, cmd Command) error {
	ctx, span := s.opts.Tracer.Start(ctx, tracing.SpanApply,
		trace.WithAttributes(
			attribute.String(tracing.AttrCommand, cmd.Kind.String()),
			attribute.String(tracing.AttrState, s.state.String()),
		))
	defer span.End()

	var err error
	switch s.state {
	case MainView:
		err = s.applyMain(ctx, cmd)
	case EditingTask:
		err = s.applyTask(ctx, cmd)
	case EditingLabels:
		err = s.applyLabels(ctx, cmd)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (s *Session) applyMain(ctx context.Context, cmd Command) error {
	switch cmd.Kind {
	case Quit:
		s.quit = true
	case MoveSelectionUp:
		if n := s.view.Len(); n > 0 {
			s.selected = (s.selected - 1 + n) % n
		}
	case MoveSelectionDown:
		if n := s.view.Len(); n > 0 {
			s.selected = (s.selected + 1) % n
		}
	case AddTask:
		s.beginTask(s.store.AddTask(task.New()), true)
	case AddTaskFromCurrent:
		t := task.New()
		if cur := s.Current(); cur != nil {
			t = cur.Derive()
		}
		s.beginTask(s.store.AddTask(t), true)
	case EditCurrentTask:
		if cur := s.Current(); cur != nil {
			s.beginTask(cur, false)
		}
	case EditLabels:
		s.labelsBefore = labeltext.Encode(s.store.Labels(), s.opts.LabelFormat)
		s.buffer.SetValue(s.labelsBefore)
		s.state = EditingLabels
		log.Debug(log.CatSession, "editing labels", "labels", len(s.store.Labels()))
	case DeleteSelectedTask:
		cur := s.Current()
		if cur == nil {
			return nil
		}
		s.store.RemoveTask(cur)
		s.refresh()
		return s.persist(ctx)
	case ToggleSelectedDone:
		cur := s.Current()
		if cur == nil {
			return nil
		}
		cur.Done = !cur.Done
		s.store.SortTasks(s.opts.Clock.Now())
		s.refresh()
		return s.persist(ctx)
	case CycleCompletionPolicy:
		p := s.view.CyclePolicy()
		s.refresh()
		log.Debug(log.CatView, "policy changed", "policy", p)
	case CycleLabelFilter:
		code := s.view.CycleLabelFilter(s.store)
		s.refresh()
		log.Debug(log.CatView, "label filter changed", "code", code)
	case CopySelectedTitle:
		cur := s.Current()
		if cur == nil {
			return nil
		}
		if s.opts.Clipboard == nil {
			return ErrNoClipboard
		}
		if err := s.opts.Clipboard.Copy(cur.Title); err != nil {
			return fmt.Errorf("copying title: %w", err)
		}
	}
	return nil
}

func (s *Session) beginTask(t *task.Task, created bool) {
	if created {
		s.refresh()
		if i := s.view.IndexOf(t); i >= 0 {
			s.selected = i
		}
	}
	s.target = t
	s.created = created
	s.property = codec.Title
	s.focus = FocusFields
	s.buffer.SetValue(s.codec.Encode(t, s.property))
	s.state = EditingTask
	log.Debug(log.CatSession, "editing task", "id", t.ID, "created", created)
}

func (s *Session) applyTask(ctx context.Context, cmd Command) error {
	if s.focus == FocusEdit {
		switch cmd.Kind {
		case CancelOneLevel:
			if s.buffer.Escape() {
				return nil
			}
			return s.commitField(ctx)
		case TextBufferKeystroke:
			s.buffer.HandleKey(cmd.Key)
		}
		return nil
	}

	switch cmd.Kind {
	case CyclePropertyUp:
		s.setProperty(s.property.Prev())
	case CyclePropertyDown:
		s.setProperty(s.property.Next())
	case ConfirmIntoEdit:
		s.focus = FocusEdit
	case CancelOneLevel:
		return s.leaveTask(ctx)
	}
	return nil
}

// setProperty switches the edited property, dropping uncommitted text.
func (s *Session) setProperty(p codec.Property) {
	s.property = p
	s.buffer.SetValue(s.codec.Encode(s.target, p))
}

// commitField decodes the buffer into the target task and saves.
func (s *Session) commitField(ctx context.Context) error {
	ctx, span := s.opts.Tracer.Start(ctx, tracing.SpanCommit,
		trace.WithAttributes(attribute.String(tracing.AttrProperty, s.property.String())))
	defer span.End()

	s.codec.Decode(s.target, s.property, s.buffer.Value())
	s.focus = FocusFields
	s.buffer.SetValue(s.codec.Encode(s.target, s.property))
	s.store.SortTasks(s.opts.Clock.Now())
	log.Debug(log.CatSession, "field committed", "id", s.target.ID, "property", s.property)
	return s.persist(ctx)
}

// leaveTask returns to the main view. Fields were committed one by one; a
// task created by this edit is saved here so it survives even when no field
// was edited.
func (s *Session) leaveTask(ctx context.Context) error {
	target, created := s.target, s.created
	s.state = MainView
	s.target = nil
	s.created = false

	s.store.SortTasks(s.opts.Clock.Now())
	s.refresh()
	if i := s.view.IndexOf(target); i >= 0 {
		s.selected = i
	}

	if created {
		return s.persist(ctx)
	}
	return nil
}

func (s *Session) applyLabels(ctx context.Context, cmd Command) error {
	switch cmd.Kind {
	case CancelOneLevel:
		if s.buffer.Escape() {
			return nil
		}
		return s.commitLabels(ctx)
	case TextBufferKeystroke:
		s.buffer.HandleKey(cmd.Key)
	}
	return nil
}

func (s *Session) commitLabels(ctx context.Context) error {
	ctx, span := s.opts.Tracer.Start(ctx, tracing.SpanCommit)
	defer span.End()

	text := s.buffer.Value()
	added, removed := labeltext.LineChanges(s.labelsBefore, text)
	log.Debug(log.CatLabels, "label buffer changed", "lines_added", added, "lines_removed", removed)

	res := labeltext.Decode(s.store, text, s.opts.LabelFormat)
	span.SetAttributes(
		attribute.Int(tracing.AttrLabelsAdded, len(res.Added)),
		attribute.Int(tracing.AttrLabelsRemove, len(res.Removed)),
	)

	s.state = MainView
	s.labelsBefore = ""
	s.refresh()
	return s.persist(ctx)
}

// Reload replaces the store with st, keeping the selection on the same
// task when it still exists. It only applies in MainView and reports
// whether the store was replaced.
func (s *Session) Reload(st *store.Store) bool {
	if s.state != MainView {
		return false
	}
	var selectedID string
	if cur := s.Current(); cur != nil {
		selectedID = cur.ID
	}

	s.attach(st)
	s.refresh()
	if selectedID != "" {
		if t := st.TaskByID(selectedID); t != nil {
			if i := s.view.IndexOf(t); i >= 0 {
				s.selected = i
			}
		}
	}
	log.Info(log.CatSession, "store reloaded", "tasks", len(st.Tasks()), "labels", len(st.Labels()))
	return true
}

// refresh regenerates the view and clamps the selection.
func (s *Session) refresh() {
	s.view.Regenerate(s.store, s.opts.Clock.Now())
	s.selected = view.Clamp(s.selected, s.view.Len())
}

func (s *Session) persist(ctx context.Context) error {
	if s.opts.Persister == nil {
		return nil
	}
	if err := s.opts.Persister.Save(ctx, s.store.Document()); err != nil {
		log.ErrorErr(log.CatSession, "save failed", err)
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}
