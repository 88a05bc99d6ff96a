package task

import "strings"

// CodeWidth is the fixed rune width of a label code.
const CodeWidth = 4

// NormalizeCode truncates s to CodeWidth runes or pads it with spaces.
func NormalizeCode(s string) string {
	runes := []rune(s)
	if len(runes) >= CodeWidth {
		return string(runes[:CodeWidth])
	}
	return s + strings.Repeat(" ", CodeWidth-len(runes))
}

// Label tags tasks. Code is the primary key and is always CodeWidth runes.
type Label struct {
	Code  string
	Name  string
	Color Color
}

// NewLabel builds a label with a normalized code.
func NewLabel(code, name string, color Color) *Label {
	return &Label{Code: NormalizeCode(code), Name: name, Color: color}
}

// ShortCode returns the code without its padding.
func (l *Label) ShortCode() string {
	return strings.TrimRight(l.Code, " ")
}
