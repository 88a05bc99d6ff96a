// Package toaster shows short notifications over the bottom of the screen.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/venom/internal/ui/overlay"
	"github.com/zjrosen/venom/internal/ui/styles"
)

// Style determines the border color and icon of a toast.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
	StyleWarn
)

// DefaultDuration is how long a toast stays up.
const DefaultDuration = 3 * time.Second

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	// seq identifies the current toast so that a dismiss scheduled for an
	// older one leaves it alone.
	seq uint64
}

// New returns a hidden toaster.
func New() Model {
	return Model{}
}

// DismissMsg hides the toast with the matching sequence number.
type DismissMsg struct {
	Seq uint64
}

// Show displays message and returns the command that dismisses it after d.
func (m Model) Show(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m.seq++
	m.message = message
	m.style = style
	seq := m.seq
	return m, tea.Tick(d, func(time.Time) tea.Msg { return DismissMsg{Seq: seq} })
}

// Update handles DismissMsg.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.Seq == m.seq {
		m.message = ""
	}
	return m
}

// Visible reports whether a toast is showing.
func (m Model) Visible() bool {
	return m.message != ""
}

// Message returns the current toast text.
func (m Model) Message() string {
	return m.message
}

// View renders the toast box, or "" when hidden.
func (m Model) View() string {
	if !m.Visible() {
		return ""
	}

	var color lipgloss.TerminalColor
	var icon string
	switch m.style {
	case StyleError:
		color, icon = styles.ToastBorderErrorColor, "✗"
	case StyleInfo:
		color, icon = styles.ToastBorderInfoColor, "i"
	case StyleWarn:
		color, icon = styles.ToastBorderWarnColor, "!"
	default:
		color, icon = styles.ToastBorderSuccessColor, "✓"
	}

	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Render(icon + " " + m.message)
}

// Overlay draws the toast over bg, one line above the bottom edge.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.Visible() {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(), bg)
}
