// Package codec converts single task fields to and from the free text shown
// in the edit buffer. Decoding never fails: malformed text either leaves
// the field unchanged or clears it.
package codec

import (
	"strconv"
	"strings"
	"time"

	"github.com/zjrosen/venom/internal/log"
	"github.com/zjrosen/venom/internal/task"
)

const (
	dateLayout  = "02 Jan 2006"
	clockLayout = "15:04"
)

// LabelResolver finds labels by code.
type LabelResolver interface {
	LabelByCode(code string) *task.Label
}

// Codec encodes and decodes task properties.
type Codec struct {
	labels LabelResolver

	// Location is used for due dates typed on a task that had none.
	Location *time.Location
}

// New returns a codec resolving labels through labels, building new due
// dates in the local time zone.
func New(labels LabelResolver) *Codec {
	return &Codec{labels: labels, Location: time.Local}
}

// Encode renders property p of t as edit text.
func (c *Codec) Encode(t *task.Task, p Property) string {
	switch p {
	case Title:
		return t.Title
	case Notes:
		return t.Notes
	case Priority:
		return t.Priority.String()
	case DueDate:
		date, clock := FormatDue(t.Due)
		return date + " " + clock
	case Label:
		if t.LabelCode == "" {
			return ""
		}
		if l := c.labels.LabelByCode(t.LabelCode); l != nil {
			return l.ShortCode()
		}
		return ""
	default:
		return ""
	}
}

// FormatDue splits a due date into its date and clock text. Both are empty
// when due is nil.
func FormatDue(due *time.Time) (date, clock string) {
	if due == nil {
		return "", ""
	}
	return due.Format(dateLayout), due.Format(clockLayout)
}

// Decode writes text into property p of t.
func (c *Codec) Decode(t *task.Task, p Property, text string) {
	switch p {
	case Title:
		t.Title = text
	case Notes:
		t.Notes = text
	case Priority:
		if prio, ok := task.ParsePriority(text); ok {
			t.Priority = prio
		} else {
			log.Debug(log.CatCodec, "priority ignored", "text", text)
		}
	case DueDate:
		c.decodeDue(t, text)
	case Label:
		code := strings.TrimSpace(text)
		if code == "" {
			t.LabelCode = ""
			return
		}
		if l := c.labels.LabelByCode(code); l != nil {
			t.LabelCode = l.Code
			return
		}
		log.Debug(log.CatCodec, "label not found, cleared", "code", code)
		t.LabelCode = ""
	}
}

// decodeDue parses "<day> <Mon> <year> <HH:MM>". Each of the date and clock
// parts falls back to the previous due date when it does not parse.
func (c *Codec) decodeDue(t *task.Task, text string) {
	fields := strings.Fields(text)
	switch len(fields) {
	case 0:
		t.Due = nil
		return
	case 4:
	default:
		log.Debug(log.CatCodec, "due date ignored", "tokens", len(fields))
		return
	}

	prev := t.Due
	year, month, day, dateOK := parseDate(fields[0], fields[1], fields[2])
	if !dateOK && prev != nil {
		year, month, day = prev.Date()
		dateOK = true
	}
	hour, minute, clockOK := parseClock(fields[3])
	if !clockOK && prev != nil {
		hour, minute = prev.Hour(), prev.Minute()
		clockOK = true
	}
	if !dateOK || !clockOK {
		log.Debug(log.CatCodec, "due date unchanged", "date_ok", dateOK, "clock_ok", clockOK)
		return
	}

	loc := c.Location
	if prev != nil {
		loc = prev.Location()
	}
	if loc == nil {
		loc = time.Local
	}
	due := time.Date(year, month, day, hour, minute, 0, 0, loc)
	t.Due = &due
}

func parseDate(dayText, monthText, yearText string) (int, time.Month, int, bool) {
	day, err := strconv.Atoi(dayText)
	if err != nil {
		return 0, 0, 0, false
	}
	month, ok := lookupMonth(monthText)
	if !ok {
		return 0, 0, 0, false
	}
	year, err := strconv.Atoi(yearText)
	if err != nil || year < 1 || year > 9999 {
		return 0, 0, 0, false
	}
	// Reject days that time.Date would roll into the next month.
	probe := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if probe.Day() != day || probe.Month() != month {
		return 0, 0, 0, false
	}
	return year, month, day, true
}

func lookupMonth(s string) (time.Month, bool) {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String()[:3], s) {
			return m, true
		}
	}
	return 0, false
}

func parseClock(s string) (int, int, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
