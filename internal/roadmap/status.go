package roadmap

// Status is the completion state of an item.
type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// AllStatuses returns the statuses in their natural order.
func AllStatuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusCompleted}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Label returns a human-readable name.
func (s Status) Label() string {
	switch s {
	case StatusInProgress:
		return "In progress"
	case StatusCompleted:
		return "Completed"
	default:
		return "Not started"
	}
}

// Icon returns a single-glyph marker for list rendering.
func (s Status) Icon() string {
	switch s {
	case StatusInProgress:
		return "◐"
	case StatusCompleted:
		return "●"
	default:
		return "○"
	}
}

// Next returns the following status in the cycle
// not-started → in-progress → completed → not-started.
func (s Status) Next() Status {
	switch s {
	case StatusNotStarted:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	default:
		return StatusNotStarted
	}
}

// Prev is the inverse of Next.
func (s Status) Prev() Status {
	switch s {
	case StatusCompleted:
		return StatusInProgress
	case StatusInProgress:
		return StatusNotStarted
	default:
		return StatusCompleted
	}
}
