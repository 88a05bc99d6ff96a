package textbuffer

import tea "github.com/charmbracelet/bubbletea"

// Key is one keystroke for the buffer. Printable input is the typed text
// itself (possibly several runes when pasted); other keys use the names
// below.
type Key string

const (
	KeyEscape    Key = "<escape>"
	KeyEnter     Key = "<enter>"
	KeyBackspace Key = "<backspace>"
	KeyDelete    Key = "<delete>"
	KeyLeft      Key = "<left>"
	KeyRight     Key = "<right>"
	KeyUp        Key = "<up>"
	KeyDown      Key = "<down>"
	KeyHome      Key = "<home>"
	KeyEnd       Key = "<end>"
	KeyTab       Key = "<tab>"
	KeyUnknown   Key = "<unknown>"
)

// KeyFromMsg translates a Bubble Tea key message.
func KeyFromMsg(msg tea.KeyMsg) Key {
	switch msg.Type {
	case tea.KeyRunes:
		return Key(string(msg.Runes))
	case tea.KeySpace:
		return " "
	case tea.KeyEscape:
		return KeyEscape
	case tea.KeyEnter:
		return KeyEnter
	case tea.KeyBackspace:
		return KeyBackspace
	case tea.KeyDelete:
		return KeyDelete
	case tea.KeyLeft:
		return KeyLeft
	case tea.KeyRight:
		return KeyRight
	case tea.KeyUp:
		return KeyUp
	case tea.KeyDown:
		return KeyDown
	case tea.KeyHome:
		return KeyHome
	case tea.KeyEnd:
		return KeyEnd
	case tea.KeyTab:
		return KeyTab
	default:
		return KeyUnknown
	}
}

func (k Key) special() bool {
	switch k {
	case KeyEscape, KeyEnter, KeyBackspace, KeyDelete, KeyLeft, KeyRight,
		KeyUp, KeyDown, KeyHome, KeyEnd, KeyTab, KeyUnknown:
		return true
	}
	return false
}
