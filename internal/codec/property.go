package codec

// Property is an editable task field. Properties cycle in the order
// Title, Label, DueDate, Notes, Priority.
type Property int

const (
	Title Property = iota
	Label
	DueDate
	Notes
	Priority
)

// Properties lists the editable properties in cycle order.
var Properties = []Property{Title, Label, DueDate, Notes, Priority}

func (p Property) String() string {
	switch p {
	case Title:
		return "Title"
	case Label:
		return "Label"
	case DueDate:
		return "Due Date"
	case Notes:
		return "Notes"
	case Priority:
		return "Priority"
	default:
		return "Unknown"
	}
}

// Next returns the following property, wrapping after the last.
func (p Property) Next() Property {
	return Properties[(int(p)+1)%len(Properties)]
}

// Prev returns the preceding property, wrapping before the first.
func (p Property) Prev() Property {
	return Properties[(int(p)+len(Properties)-1)%len(Properties)]
}
