// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	TextMutedColor   = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Hints, help text, empty cells

	// Borders
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#BBBBBB", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Table
	HeaderColor      = lipgloss.AdaptiveColor{Light: "#B145C9", Dark: "#FF87FF"}
	RowSelectedColor = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#3A3A3A"}
	RowDoneColor     = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#666666"}

	// Task priority
	PriorityLowColor    = lipgloss.AdaptiveColor{Light: "#2E9E4F", Dark: "#73F59F"}
	PriorityMediumColor = lipgloss.AdaptiveColor{Light: "#C99A06", Dark: "#FECA57"}
	PriorityHighColor   = lipgloss.AdaptiveColor{Light: "#D63031", Dark: "#FF8787"}

	// Text buffer mode indicator
	ModeNormalColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	ModeInsertColor = lipgloss.AdaptiveColor{Light: "#2E9E4F", Dark: "#73F59F"}

	// Toast notification colors
	ToastBorderSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	ToastBorderErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	ToastBorderInfoColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	ToastBorderWarnColor    = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}

	// Styles derived from the colors above; rebuilt by ApplyTheme.
	HeaderStyle      lipgloss.Style
	MutedStyle       lipgloss.Style
	SelectedRowStyle lipgloss.Style
	DoneStyle        lipgloss.Style
	CursorStyle      lipgloss.Style
	FieldActiveStyle lipgloss.Style
	FieldStyle       lipgloss.Style
	ErrorStyle       lipgloss.Style
)

func init() {
	rebuildStyles()
}

func rebuildStyles() {
	HeaderStyle = lipgloss.NewStyle().Foreground(HeaderColor).Bold(true)
	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	SelectedRowStyle = lipgloss.NewStyle().Background(RowSelectedColor).Bold(true)
	DoneStyle = lipgloss.NewStyle().Foreground(RowDoneColor).Strikethrough(true)
	CursorStyle = lipgloss.NewStyle().Reverse(true)
	FieldActiveStyle = lipgloss.NewStyle().Foreground(BorderFocusColor).Bold(true)
	FieldStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	ErrorStyle = lipgloss.NewStyle().Foreground(ToastBorderErrorColor).Bold(true)
}
