package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// Panel describes a bordered box with the title set into the top border:
//
//	╭─ Tasks (show completed) ─────╮
//	│ ...                          │
//	╰──────────────────────────────╯
type Panel struct {
	Title   string
	Hint    string
	Width   int
	Height  int
	Focused bool
}

// Render draws content inside the panel. Content is clipped to the inner
// area and padded so the right border lines up.
func (p Panel) Render(content string) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if p.Focused {
		borderColor = BorderFocusColor
	}
	border := lipgloss.NewStyle().Foreground(borderColor)

	inner := max(p.Width-2, 1)
	rows := max(p.Height-2, 1)

	lines := strings.Split(content, "\n")
	body := make([]string, rows)
	for i := range body {
		var line string
		if i < len(lines) {
			line = TruncateString(lines[i], inner)
		}
		if w := lipgloss.Width(line); w < inner {
			line += strings.Repeat(" ", inner-w)
		}
		body[i] = border.Render(borderVertical) + line + border.Render(borderVertical)
	}

	bottom := border.Render(borderBottomLeft + strings.Repeat(borderHorizontal, inner) + borderBottomRight)
	return p.top(inner, border) + "\n" + strings.Join(body, "\n") + "\n" + bottom
}

func (p Panel) top(inner int, border lipgloss.Style) string {
	// "─ " before the title and " " after it need at least 4 cells.
	if p.Title == "" || inner < 4 {
		return border.Render(borderTopLeft + strings.Repeat(borderHorizontal, inner) + borderTopRight)
	}

	titleStyle := HeaderStyle
	if !p.Focused {
		titleStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor).Bold(true)
	}

	title := titleStyle.Render(p.Title)
	if p.Hint != "" {
		title += " " + MutedStyle.Render("("+p.Hint+")")
	}
	title = TruncateString(title, inner-3)

	dashes := max(inner-3-lipgloss.Width(title), 0)
	return border.Render(borderTopLeft+borderHorizontal+" ") + title +
		border.Render(" "+strings.Repeat(borderHorizontal, dashes)+borderTopRight)
}
