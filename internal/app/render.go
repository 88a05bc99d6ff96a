package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/venom/internal/keys"
	"github.com/zjrosen/venom/internal/session"
	"github.com/zjrosen/venom/internal/textbuffer"
	"github.com/zjrosen/venom/internal/ui/overlay"
	"github.com/zjrosen/venom/internal/ui/styles"
)

const (
	markWidth  = 2
	checkWidth = 4
	labelWidth = 5
	// "02 Jan 2006 15:04" plus a leading gap.
	dueWidth = 18

	// Share of the width given to the task table when the summary is shown.
	tablePercent = 60
)

func rowZoneID(i int) string {
	return fmt.Sprintf("venom-row-%d", i)
}

func (m Model) renderMain(snap session.Snapshot) string {
	helpView := m.helpView(snap)
	bodyHeight := max(m.height-lipgloss.Height(helpView), 3)

	tableWidth := m.width
	if m.showSummary {
		tableWidth = m.width * tablePercent / 100
	}

	table := styles.Panel{
		Title:   "Tasks",
		Hint:    m.tableHint(snap),
		Width:   tableWidth,
		Height:  bodyHeight,
		Focused: snap.State == session.MainView,
	}.Render(m.renderRows(snap, max(tableWidth-2, 1)))

	body := table
	if m.showSummary {
		summaryWidth := m.width - tableWidth
		summary := styles.Panel{
			Title:  "Summary",
			Width:  summaryWidth,
			Height: bodyHeight,
		}.Render(m.notes.Render(snap.Notes, max(summaryWidth-4, 1)))
		body = lipgloss.JoinHorizontal(lipgloss.Top, table, summary)
	}
	return body + "\n" + helpView
}

func (m Model) tableHint(snap session.Snapshot) string {
	hint := snap.Policy.Title()
	if snap.Filter != "" {
		hint += ", label " + snap.Filter
	}
	return hint
}

func (m Model) helpView(snap session.Snapshot) string {
	h := m.help
	switch {
	case snap.State == session.MainView:
		return h.View(keys.Main)
	case snap.State == session.EditingTask && snap.Focus == session.FocusFields:
		h.ShowAll = false
		return h.View(keys.Fields)
	default:
		h.ShowAll = false
		return h.View(keys.Editor)
	}
}

func (m Model) renderRows(snap session.Snapshot, width int) string {
	if len(snap.Rows) == 0 {
		return styles.MutedStyle.Render("No tasks. Press a to add one.")
	}

	titleWidth := max(width-markWidth-checkWidth-labelWidth-dueWidth, 1)
	lines := make([]string, 0, len(snap.Rows))
	for i, row := range snap.Rows {
		lines = append(lines, zone.Mark(rowZoneID(i), renderRow(row, titleWidth)))
	}
	return strings.Join(lines, "\n")
}

func renderRow(row session.Row, titleWidth int) string {
	mark := "  "
	if row.Selected {
		mark = styles.HeaderStyle.Render("▶ ")
	}

	check := "[ ] "
	if row.Done {
		check = "[x] "
	}

	label := styles.PadRight("", labelWidth)
	if row.LabelCode != "" {
		label = styles.LabelStyle(row.LabelColor).Render(styles.PadRight(row.LabelCode, labelWidth))
	}

	titleStyle := styles.PriorityStyle(row.Priority)
	if row.Done {
		titleStyle = styles.DoneStyle
	}
	if row.Selected {
		titleStyle = titleStyle.Inherit(styles.SelectedRowStyle)
	}
	title := titleStyle.Render(styles.PadRight(row.Title, titleWidth))

	due := ""
	if row.DueDate != "" {
		due = row.DueDate + " " + row.DueTime
	}
	due = styles.MutedStyle.Render(fmt.Sprintf("%*s", dueWidth, due))

	return mark + check + label + title + due
}

// renderEditorOverlay draws the task or label editor as a centered popup.
func (m Model) renderEditorOverlay(snap session.Snapshot, bg string) string {
	width := min(max(m.width*2/3, 30), m.width)

	var content, title, hint string
	switch snap.State {
	case session.EditingTask:
		title = "Edit Task"
		hint = snap.Property.String()
		content = renderFields(snap, width-2) + "\n\n" + renderBuffer(snap.Editor, snap.Focus == session.FocusEdit)
	case session.EditingLabels:
		title = "Labels"
		hint = "code name color"
		content = renderBuffer(snap.Editor, true)
	}
	if snap.Editor != nil {
		content += "\n\n" + modeLine(snap.Editor.Mode)
	}

	height := min(lipgloss.Height(content)+2, m.height)
	popup := styles.Panel{
		Title:   title,
		Hint:    hint,
		Width:   width,
		Height:  height,
		Focused: true,
	}.Render(content)

	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, popup, bg)
}

func renderFields(snap session.Snapshot, width int) string {
	const nameWidth = 10
	lines := make([]string, 0, len(snap.Fields))
	for _, f := range snap.Fields {
		value := strings.ReplaceAll(f.Value, "\n", " ⏎ ")
		line := styles.PadRight(f.Property.String(), nameWidth) + styles.TruncateString(value, max(width-nameWidth-2, 1))
		if f.Property == snap.Property {
			lines = append(lines, styles.FieldActiveStyle.Render("› "+line))
			continue
		}
		lines = append(lines, styles.FieldStyle.Render("  "+line))
	}
	return strings.Join(lines, "\n")
}

// renderBuffer shows the buffer lines with the cursor cell reversed when
// the buffer has focus.
func renderBuffer(ed *session.Editor, focused bool) string {
	if ed == nil {
		return ""
	}
	lines := make([]string, len(ed.Lines))
	for i, line := range ed.Lines {
		if !focused || i != ed.Cursor.Row {
			lines[i] = line
			continue
		}
		lines[i] = withCursor(line, ed.Cursor.Col)
	}
	return strings.Join(lines, "\n")
}

// withCursor reverses the grapheme at index col, or appends a reversed
// space past the end of the line.
func withCursor(line string, col int) string {
	var b strings.Builder
	g := uniseg.NewGraphemes(line)
	for i := 0; g.Next(); i++ {
		if i == col {
			b.WriteString(styles.CursorStyle.Render(g.Str()))
			continue
		}
		b.WriteString(g.Str())
	}
	if col >= uniseg.GraphemeClusterCount(line) {
		b.WriteString(styles.CursorStyle.Render(" "))
	}
	return b.String()
}

func modeLine(mode textbuffer.Mode) string {
	color := styles.ModeNormalColor
	if mode == textbuffer.ModeInsert {
		color = styles.ModeInsertColor
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render("-- " + mode.String() + " --")
}
