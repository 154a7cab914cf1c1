package services

import (
	"sync"
	"time"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
	"github.com/custodia-labs/sercha-reader/internal/core/ports/driving"
)

// Ensure Notifier implements the interface.
var _ driving.NotificationService = (*Notifier)(nil)

// Notifier holds the single transient notification shown to the user.
// A new notification replaces the current one and restarts its expiry.
type Notifier struct {
	mu        sync.Mutex
	scheduler *Scheduler
	duration  time.Duration
	current   domain.Notification
}

// NewNotifier creates a notifier whose notifications expire after duration.
func NewNotifier(scheduler *Scheduler, duration time.Duration) *Notifier {
	if scheduler == nil {
		scheduler = NewScheduler()
	}
	if duration <= 0 {
		duration = domain.DefaultReaderSettings().ToastDuration
	}
	return &Notifier{scheduler: scheduler, duration: duration}
}

// Show replaces the current notification and returns its expiry ticket.
func (n *Notifier) Show(note domain.Notification) domain.Ticket {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.current = note
	return n.scheduler.Schedule(domain.TaskToast, n.duration)
}

// Expire clears the notification if t is still its live expiry ticket.
func (n *Notifier) Expire(t domain.Ticket) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.scheduler.Claim(t) {
		return false
	}
	n.current = domain.Notification{}
	return true
}

// Clear removes the notification and cancels its expiry.
func (n *Notifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.scheduler.Cancel(domain.TaskToast)
	n.current = domain.Notification{}
}

// Current returns the visible notification.
func (n *Notifier) Current() domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// SetDuration changes the display duration of future notifications.
func (n *Notifier) SetDuration(d time.Duration) {
	if d <= 0 {
		return
	}
	n.mu.Lock()
	n.duration = d
	n.mu.Unlock()
}
