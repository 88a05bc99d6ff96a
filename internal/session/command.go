package session

import "github.com/zjrosen/venom/internal/textbuffer"

// Kind names an abstract user command.
type Kind int

const (
	Quit Kind = iota
	MoveSelectionUp
	MoveSelectionDown
	AddTask
	AddTaskFromCurrent
	EditCurrentTask
	EditLabels
	DeleteSelectedTask
	ToggleSelectedDone
	CycleCompletionPolicy
	CycleLabelFilter
	CyclePropertyUp
	CyclePropertyDown
	ConfirmIntoEdit
	CancelOneLevel
	TextBufferKeystroke
	CopySelectedTitle
)

var kindNames = map[Kind]string{
	Quit:                  "quit",
	MoveSelectionUp:       "move_selection_up",
	MoveSelectionDown:     "move_selection_down",
	AddTask:               "add_task",
	AddTaskFromCurrent:    "add_task_from_current",
	EditCurrentTask:       "edit_current_task",
	EditLabels:            "edit_labels",
	DeleteSelectedTask:    "delete_selected_task",
	ToggleSelectedDone:    "toggle_selected_done",
	CycleCompletionPolicy: "cycle_completion_policy",
	CycleLabelFilter:      "cycle_label_filter",
	CyclePropertyUp:       "cycle_property_up",
	CyclePropertyDown:     "cycle_property_down",
	ConfirmIntoEdit:       "confirm_into_edit",
	CancelOneLevel:        "cancel_one_level",
	TextBufferKeystroke:   "text_buffer_keystroke",
	CopySelectedTitle:     "copy_selected_title",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Command is one input to the session. Key is only set for
// TextBufferKeystroke.
type Command struct {
	Kind Kind
	Key  textbuffer.Key
}

// Do returns a command without a key.
func Do(kind Kind) Command {
	return Command{Kind: kind}
}

// Keystroke returns a command forwarding k to the text buffer.
func Keystroke(k textbuffer.Key) Command {
	return Command{Kind: TextBufferKeystroke, Key: k}
}
