package domain

import "time"

// TaskKind classifies scheduled work. At most one task per kind is outstanding.
type TaskKind string

// Task kinds used by the reader.
const (
	// TaskFrame recomputes scroll-derived state once per display frame.
	TaskFrame TaskKind = "frame"

	// TaskToast expires the visible notification.
	TaskToast TaskKind = "toast"

	// TaskSearch completes a pending search.
	TaskSearch TaskKind = "search"
)

// Ticket identifies one scheduled task. A ticket is live until it is claimed,
// cancelled or superseded by a newer ticket of the same kind.
type Ticket struct {
	Kind  TaskKind
	Seq   uint64
	Delay time.Duration
}
