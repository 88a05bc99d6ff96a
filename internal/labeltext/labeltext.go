// Package labeltext edits the whole label set as one block of text, one
// label per line: "<code> <color> <name>".
package labeltext

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zjrosen/venom/internal/log"
	"github.com/zjrosen/venom/internal/store"
	"github.com/zjrosen/venom/internal/task"
)

// Format selects how the color column is written.
type Format int

const (
	// FormatName writes one color token: a name such as Blue or #rrggbb.
	FormatName Format = iota
	// FormatRGB writes three decimal tokens, each 0-255.
	FormatRGB
)

func (f Format) String() string {
	if f == FormatRGB {
		return "rgb"
	}
	return "name"
}

// ParseFormat reads a config value.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "name", "":
		return FormatName, nil
	case "rgb":
		return FormatRGB, nil
	default:
		return FormatName, fmt.Errorf("unknown label color format %q (expected name or rgb)", s)
	}
}

// Line is one parsed label line.
type Line struct {
	Code  string
	Color task.Color
	Name  string
}

// Result reports what Reconcile changed. Codes are normalized.
type Result struct {
	Added   []string
	Updated []string
	Removed []string
	// Cleared counts tasks whose label reference was dropped.
	Cleared int
}

// Changed reports whether any label was added or removed, or any
// task lost its label.
func (r Result) Changed() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0 || r.Cleared > 0
}

// Encode renders labels one per line with no trailing newline.
func Encode(labels []*task.Label, f Format) string {
	lines := make([]string, 0, len(labels))
	for _, l := range labels {
		lines = append(lines, l.ShortCode()+" "+colorText(l.Color, f)+" "+l.Name)
	}
	return strings.Join(lines, "\n")
}

func colorText(c task.Color, f Format) string {
	if f != FormatRGB {
		return c.String()
	}
	r, g, b, ok := c.RGB()
	if !ok {
		// Unknown names have no components; write white so the line
		// still parses back.
		log.Warn(log.CatLabels, "color has no rgb value, writing white", "color", c.Name)
		r, g, b = 255, 255, 255
	}
	return task.RGBColor(r, g, b).Triple()
}

// Parse splits text into label lines. Lines with fewer than three tokens
// are dropped, as are RGB lines whose components are not 0-255.
func Parse(text string, f Format) []Line {
	var out []Line
	for _, raw := range strings.Split(text, "\n") {
		fields := strings.Fields(raw)
		if len(fields) < 3 {
			continue
		}

		line := Line{Code: fields[0]}
		if f == FormatRGB {
			if len(fields) < 4 {
				continue
			}
			var rgb [3]uint8
			ok := true
			for i := range rgb {
				v, err := strconv.ParseUint(fields[1+i], 10, 8)
				if err != nil {
					ok = false
					break
				}
				rgb[i] = uint8(v)
			}
			if !ok {
				log.Debug(log.CatLabels, "line dropped", "line", raw)
				continue
			}
			line.Color = task.RGBColor(rgb[0], rgb[1], rgb[2])
			line.Name = strings.Join(fields[4:], " ")
		} else {
			line.Color = task.ParseColor(fields[1])
			line.Name = strings.Join(fields[2:], " ")
		}
		out = append(out, line)
	}
	return out
}

// Reconcile makes the store's labels match lines. Existing labels are
// updated in place so task references stay valid, new codes are added,
// and labels missing from lines are removed along with their references.
// A later line for the same code overrides an earlier one.
func Reconcile(s *store.Store, lines []Line) Result {
	return reconcile(s, lines, FormatName)
}

// reconcile keeps an existing label's color when the line carries the
// color as f would write it, so a lossy RGB rendering of a named color
// does not replace the name.
func reconcile(s *store.Store, lines []Line, f Format) Result {
	var res Result
	seen := make(map[string]bool, len(lines))

	for _, line := range lines {
		code := task.NormalizeCode(line.Code)
		if l := s.LabelByCode(code); l != nil {
			l.Name = line.Name
			if colorText(l.Color, f) != colorText(line.Color, f) {
				l.Color = line.Color
			}
			if !seen[code] {
				res.Updated = append(res.Updated, code)
			}
		} else {
			s.AddLabel(task.NewLabel(code, line.Name, line.Color))
			res.Added = append(res.Added, code)
		}
		seen[code] = true
	}

	var stale []string
	for _, l := range s.Labels() {
		if !seen[l.Code] {
			stale = append(stale, l.Code)
		}
	}
	for _, code := range stale {
		for _, t := range s.Tasks() {
			if t.LabelCode == code {
				res.Cleared++
			}
		}
		s.RemoveLabel(code)
		res.Removed = append(res.Removed, code)
	}

	res.Cleared += s.ResolveLabels()

	log.Info(log.CatLabels, "labels reconciled",
		"added", len(res.Added), "updated", len(res.Updated),
		"removed", len(res.Removed), "tasks_cleared", res.Cleared)
	return res
}

// Decode parses text and reconciles it into s.
func Decode(s *store.Store, text string, f Format) Result {
	return reconcile(s, Parse(text, f), f)
}
