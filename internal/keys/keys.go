// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// MainKeyMap defines the keybindings for the task list.
type MainKeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Tasks
	Add         key.Binding
	AddFrom     key.Binding
	Edit        key.Binding
	Delete      key.Binding
	ToggleDone  key.Binding
	Yank        key.Binding
	EditLabels  key.Binding
	CyclePolicy key.Binding
	CycleFilter key.Binding

	// General
	Help key.Binding
	Quit key.Binding
}

// Main holds the task list bindings.
var Main = MainKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "move down"),
	),

	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add task"),
	),
	AddFrom: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "add from current"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e", "enter"),
		key.WithHelp("e/enter", "edit task"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete task"),
	),
	ToggleDone: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle done"),
	),
	Yank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy title"),
	),
	EditLabels: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "edit labels"),
	),
	CyclePolicy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "completed tasks"),
	),
	CycleFilter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter by label"),
	),

	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q/esc", "quit"),
	),
}

// ShortHelp returns keybindings for the short help view.
func (k MainKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.ToggleDone, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k MainKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Add, k.AddFrom, k.Edit, k.Delete, k.ToggleDone, k.Yank},
		{k.EditLabels, k.CyclePolicy, k.CycleFilter},
		{k.Help, k.Quit},
	}
}

// FieldsKeyMap defines the keybindings of the task editor while moving
// between properties.
type FieldsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Back    key.Binding
}

// Fields holds the property list bindings.
var Fields = FieldsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up", "shift+tab"),
		key.WithHelp("k/↑", "previous field"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down", "tab"),
		key.WithHelp("j/↓", "next field"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter", "i"),
		key.WithHelp("enter", "edit field"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "close"),
	),
}

// ShortHelp returns keybindings for the short help view.
func (k FieldsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Confirm, k.Back}
}

// FullHelp returns keybindings for the full help view.
func (k FieldsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// EditorKeyMap defines the keybindings handled outside the text buffer
// while it has focus. Everything else is typed into the buffer.
type EditorKeyMap struct {
	Cancel key.Binding
}

// Editor holds the text buffer bindings.
var Editor = EditorKeyMap{
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "normal mode / save"),
	),
}

// ShortHelp returns keybindings for the short help view.
func (k EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Cancel}
}

// FullHelp returns keybindings for the full help view.
func (k EditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
