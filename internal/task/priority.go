package task

// Priority ranks how urgent a task is.
type Priority int

const (
	PriorityNone Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
)

// Priorities lists every priority in ascending order.
var Priorities = []Priority{PriorityNone, PriorityLow, PriorityMedium, PriorityHigh}

// String returns the display name used in edit buffers and the save file.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return "None"
	}
}

// ParsePriority matches s case-sensitively against the display names.
func ParsePriority(s string) (Priority, bool) {
	for _, p := range Priorities {
		if p.String() == s {
			return p, true
		}
	}
	return PriorityNone, false
}
