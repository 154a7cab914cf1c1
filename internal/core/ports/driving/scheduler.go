package driving

import (
	"time"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
)

// TaskScheduler issues cancelable tickets for deferred work.
// The presentation layer owns the timers and claims tickets when they fire.
type TaskScheduler interface {
	// Schedule issues a ticket for kind, superseding any outstanding one.
	Schedule(kind domain.TaskKind, delay time.Duration) domain.Ticket

	// Claim consumes t and reports whether it was still live.
	Claim(t domain.Ticket) bool

	// Cancel drops the outstanding ticket of kind.
	Cancel(kind domain.TaskKind)
}

// NotificationService holds the single transient notification.
type NotificationService interface {
	// Show replaces the current notification and returns its expiry ticket.
	Show(note domain.Notification) domain.Ticket

	// Expire clears the notification if t is its live expiry ticket.
	Expire(t domain.Ticket) bool

	// Current returns the visible notification.
	Current() domain.Notification

	// SetDuration changes how long future notifications stay visible.
	SetDuration(d time.Duration)
}
