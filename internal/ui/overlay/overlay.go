// Package overlay draws one block of terminal text over another without
// clearing what lies beneath.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position is where the foreground is anchored.
type Position int

const (
	Center Position = iota
	Top
	Bottom
)

// Config is the viewport and anchor.
type Config struct {
	Width    int
	Height   int
	Position Position
	// PadY keeps Top and Bottom placements away from the edge.
	PadY int
}

// Place renders fg on top of bg. Both may contain ANSI styling; cells of bg
// left and right of fg keep theirs.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	x, y := origin(cfg, lipgloss.Width(fg), len(fgLines))
	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = splice(bgLines[row], line, x)
	}
	return strings.Join(bgLines, "\n")
}

// splice replaces the cells of bg starting at column x with fg.
func splice(bg, fg string, x int) string {
	left := ansi.Truncate(bg, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	end := x + ansi.StringWidth(fg)
	var right string
	if end < ansi.StringWidth(bg) {
		right = ansi.TruncateLeft(bg, end, "")
	}
	return left + fg + right
}

func origin(cfg Config, w, h int) (x, y int) {
	x = (cfg.Width - w) / 2
	switch cfg.Position {
	case Top:
		y = cfg.PadY
	case Bottom:
		y = cfg.Height - h - cfg.PadY
	default:
		y = (cfg.Height - h) / 2
	}
	return max(x, 0), max(y, 0)
}
