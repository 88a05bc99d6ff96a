package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/venom/internal/keys"
	"github.com/zjrosen/venom/internal/session"
	"github.com/zjrosen/venom/internal/textbuffer"
)

var mainBindings = []struct {
	binding *key.Binding
	kind    session.Kind
}{
	{&keys.Main.Quit, session.Quit},
	{&keys.Main.Up, session.MoveSelectionUp},
	{&keys.Main.Down, session.MoveSelectionDown},
	{&keys.Main.Add, session.AddTask},
	{&keys.Main.AddFrom, session.AddTaskFromCurrent},
	{&keys.Main.Edit, session.EditCurrentTask},
	{&keys.Main.EditLabels, session.EditLabels},
	{&keys.Main.Delete, session.DeleteSelectedTask},
	{&keys.Main.ToggleDone, session.ToggleSelectedDone},
	{&keys.Main.CyclePolicy, session.CycleCompletionPolicy},
	{&keys.Main.CycleFilter, session.CycleLabelFilter},
	{&keys.Main.Yank, session.CopySelectedTitle},
}

var fieldBindings = []struct {
	binding *key.Binding
	kind    session.Kind
}{
	{&keys.Fields.Up, session.CyclePropertyUp},
	{&keys.Fields.Down, session.CyclePropertyDown},
	{&keys.Fields.Confirm, session.ConfirmIntoEdit},
	{&keys.Fields.Back, session.CancelOneLevel},
}

// commandFor maps a key press to a session command for the current state.
// Unbound keys in the main view and the field list report false; in a text
// buffer every key is forwarded.
func commandFor(snap session.Snapshot, msg tea.KeyMsg) (session.Command, bool) {
	switch {
	case snap.State == session.MainView:
		for _, b := range mainBindings {
			if key.Matches(msg, *b.binding) {
				return session.Do(b.kind), true
			}
		}
		return session.Command{}, false

	case snap.State == session.EditingTask && snap.Focus == session.FocusFields:
		for _, b := range fieldBindings {
			if key.Matches(msg, *b.binding) {
				return session.Do(b.kind), true
			}
		}
		return session.Command{}, false

	default:
		if key.Matches(msg, keys.Editor.Cancel) {
			return session.Do(session.CancelOneLevel), true
		}
		return session.Keystroke(textbuffer.KeyFromMsg(msg)), true
	}
}
