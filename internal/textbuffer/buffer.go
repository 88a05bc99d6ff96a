// Package textbuffer is a small line-oriented text editor with vim-style
// Normal and Insert modes. It owns the nested cancel layer of the edit
// session: Escape first returns the buffer to its base mode, and only an
// Escape at the base mode leaves the editor.
package textbuffer

import "strings"

// Mode is the buffer's editing mode.
type Mode int

const (
	// ModeNormal navigates and runs single-key commands.
	ModeNormal Mode = iota
	// ModeInsert types text.
	ModeInsert
)

// String returns the status-line name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	default:
		return "UNKNOWN"
	}
}

// Config configures a Buffer.
type Config struct {
	// VimEnabled selects Normal as the base mode. When false the buffer is
	// always in Insert mode and never absorbs Escape.
	VimEnabled bool
}

// Position is a cursor position; Col counts graphemes.
type Position struct {
	Row int
	Col int
}

// Buffer holds lines of text, a cursor and the current mode.
type Buffer struct {
	config  Config
	lines   []string
	row     int
	col     int
	mode    Mode
	pending Key
}

// New returns an empty buffer in its base mode.
func New(config Config) *Buffer {
	b := &Buffer{config: config}
	b.SetValue("")
	return b
}

// SetValue replaces the content, puts the cursor at the start and returns
// to the base mode.
func (b *Buffer) SetValue(text string) {
	b.lines = strings.Split(text, "\n")
	b.row, b.col = 0, 0
	b.mode = b.BaseMode()
	b.pending = ""
}

// Value returns the content joined with newlines.
func (b *Buffer) Value() string {
	return strings.Join(b.lines, "\n")
}

// Lines returns the content lines. Callers must not modify them.
func (b *Buffer) Lines() []string {
	return b.lines
}

// Mode returns the current mode.
func (b *Buffer) Mode() Mode {
	return b.mode
}

// BaseMode is the mode Escape returns to.
func (b *Buffer) BaseMode() Mode {
	if b.config.VimEnabled {
		return ModeNormal
	}
	return ModeInsert
}

// AtBase reports whether the buffer is in its base mode with no pending
// command.
func (b *Buffer) AtBase() bool {
	return b.mode == b.BaseMode() && b.pending == ""
}

// Cursor returns the cursor position.
func (b *Buffer) Cursor() Position {
	return Position{Row: b.row, Col: b.col}
}

// CursorColumn returns the display column of the cursor on its line.
func (b *Buffer) CursorColumn() int {
	return displayWidth(slice(b.lines[b.row], 0, b.col))
}

// Escape steps the buffer toward its base mode. It reports whether the
// key was absorbed; false means the caller should handle the cancel.
func (b *Buffer) Escape() bool {
	if b.AtBase() {
		return false
	}
	b.pending = ""
	if b.mode == ModeInsert && b.config.VimEnabled {
		b.mode = ModeNormal
		if b.col > 0 {
			b.col--
		}
	}
	b.clampCol()
	return true
}

// HandleKey applies one keystroke. Escape goes through Escape.
func (b *Buffer) HandleKey(k Key) {
	if k == KeyEscape {
		b.Escape()
		return
	}
	if b.mode == ModeInsert {
		b.handleInsert(k)
	} else {
		b.handleNormal(k)
	}
	b.clampCol()
}

func (b *Buffer) handleInsert(k Key) {
	switch k {
	case KeyEnter:
		b.insertText("\n")
	case KeyTab:
		b.insertText("\t")
	case KeyBackspace:
		b.backspace()
	case KeyDelete:
		b.deleteForward()
	case KeyLeft, KeyRight, KeyUp, KeyDown, KeyHome, KeyEnd:
		b.move(k)
	default:
		if !k.special() {
			b.insertText(string(k))
		}
	}
}

func (b *Buffer) handleNormal(k Key) {
	if b.pending != "" {
		seq := b.pending + k
		b.pending = ""
		switch seq {
		case "dd":
			b.deleteLine()
		case "gg":
			b.row, b.col = 0, 0
		}
		return
	}

	switch k {
	case "h", KeyLeft, KeyBackspace:
		b.move(KeyLeft)
	case "l", KeyRight, " ":
		b.move(KeyRight)
	case "j", KeyDown, KeyEnter:
		b.move(KeyDown)
	case "k", KeyUp:
		b.move(KeyUp)
	case "0", KeyHome:
		b.col = 0
	case "$", KeyEnd:
		b.col = graphemeCount(b.lines[b.row])
	case "w":
		b.wordForward()
	case "b":
		b.wordBackward()
	case "G":
		b.row = len(b.lines) - 1
		b.col = 0
	case "i":
		b.mode = ModeInsert
	case "a":
		b.mode = ModeInsert
		if graphemeCount(b.lines[b.row]) > 0 {
			b.col++
		}
	case "I":
		b.mode = ModeInsert
		b.col = 0
	case "A":
		b.mode = ModeInsert
		b.col = graphemeCount(b.lines[b.row])
	case "o":
		b.openLine(b.row + 1)
	case "O":
		b.openLine(b.row)
	case "x", KeyDelete:
		b.deleteForward()
	case "D":
		line := b.lines[b.row]
		b.lines[b.row] = slice(line, 0, b.col)
	case "d", "g":
		b.pending = k
	}
}

func (b *Buffer) insertText(text string) {
	line := b.lines[b.row]
	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		b.lines[b.row] = insertAt(line, b.col, text)
		b.col += graphemeCount(text)
		return
	}

	before := slice(line, 0, b.col)
	after := line[byteOffset(line, b.col):]

	last := parts[len(parts)-1]
	newLines := make([]string, 0, len(parts))
	newLines = append(newLines, before+parts[0])
	newLines = append(newLines, parts[1:len(parts)-1]...)
	newLines = append(newLines, last+after)

	b.lines = append(b.lines[:b.row], append(newLines, b.lines[b.row+1:]...)...)
	b.row += len(parts) - 1
	b.col = graphemeCount(last)
}

func (b *Buffer) backspace() {
	if b.col > 0 {
		b.lines[b.row] = deleteRange(b.lines[b.row], b.col-1, b.col)
		b.col--
		return
	}
	if b.row == 0 {
		return
	}
	prev := b.lines[b.row-1]
	b.col = graphemeCount(prev)
	b.lines[b.row-1] = prev + b.lines[b.row]
	b.lines = append(b.lines[:b.row], b.lines[b.row+1:]...)
	b.row--
}

func (b *Buffer) deleteForward() {
	line := b.lines[b.row]
	if b.col < graphemeCount(line) {
		b.lines[b.row] = deleteRange(line, b.col, b.col+1)
		return
	}
	// Joining lines only happens while typing.
	if b.mode == ModeInsert && b.row < len(b.lines)-1 {
		b.lines[b.row] = line + b.lines[b.row+1]
		b.lines = append(b.lines[:b.row+1], b.lines[b.row+2:]...)
	}
}

func (b *Buffer) deleteLine() {
	if len(b.lines) == 1 {
		b.lines[0] = ""
		b.col = 0
		return
	}
	b.lines = append(b.lines[:b.row], b.lines[b.row+1:]...)
	if b.row >= len(b.lines) {
		b.row = len(b.lines) - 1
	}
	b.col = 0
}

func (b *Buffer) openLine(at int) {
	b.lines = append(b.lines[:at], append([]string{""}, b.lines[at:]...)...)
	b.row = at
	b.col = 0
	b.mode = ModeInsert
}

func (b *Buffer) move(k Key) {
	switch k {
	case KeyLeft:
		if b.col > 0 {
			b.col--
		}
	case KeyRight:
		b.col++
	case KeyUp:
		if b.row > 0 {
			b.row--
		}
	case KeyDown:
		if b.row < len(b.lines)-1 {
			b.row++
		}
	case KeyHome:
		b.col = 0
	case KeyEnd:
		b.col = graphemeCount(b.lines[b.row])
	}
}

func (b *Buffer) wordForward() {
	line := b.lines[b.row]
	n := graphemeCount(line)
	i := b.col
	for i < n && !isSpace(clusterAt(line, i)) {
		i++
	}
	for i < n && isSpace(clusterAt(line, i)) {
		i++
	}
	if i >= n && b.row < len(b.lines)-1 {
		b.row++
		b.col = 0
		return
	}
	b.col = i
}

func (b *Buffer) wordBackward() {
	line := b.lines[b.row]
	i := b.col
	if i == 0 {
		if b.row > 0 {
			b.row--
			b.col = graphemeCount(b.lines[b.row])
		}
		return
	}
	i--
	for i > 0 && isSpace(clusterAt(line, i)) {
		i--
	}
	for i > 0 && !isSpace(clusterAt(line, i-1)) {
		i--
	}
	b.col = i
}

// clampCol keeps the cursor on a grapheme. Normal mode cannot sit past the
// last character; Insert mode may sit just after it.
func (b *Buffer) clampCol() {
	if b.row >= len(b.lines) {
		b.row = len(b.lines) - 1
	}
	limit := graphemeCount(b.lines[b.row])
	if b.mode == ModeNormal && limit > 0 {
		limit--
	}
	if b.col > limit {
		b.col = limit
	}
	if b.col < 0 {
		b.col = 0
	}
}
