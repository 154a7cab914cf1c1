package services

import (
	"sync"
	"time"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
	"github.com/custodia-labs/sercha-reader/internal/core/ports/driving"
)

// Ensure Scheduler implements the interface.
var _ driving.TaskScheduler = (*Scheduler)(nil)

// Scheduler hands out cancelable tickets for deferred work. Scheduling a
// kind supersedes the outstanding ticket of that kind, so a replaced timer
// can never claim its work. The presentation layer owns the actual timers
// and claims tickets when they fire.
type Scheduler struct {
	mu   sync.Mutex
	seq  uint64
	live map[domain.TaskKind]uint64
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{live: make(map[domain.TaskKind]uint64)}
}

// Schedule issues a new ticket for kind, cancelling any outstanding one.
func (s *Scheduler) Schedule(kind domain.TaskKind, delay time.Duration) domain.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.live[kind] = s.seq
	return domain.Ticket{Kind: kind, Seq: s.seq, Delay: delay}
}

// Claim consumes t and reports whether it was still live.
func (s *Scheduler) Claim(t domain.Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq, ok := s.live[t.Kind]; !ok || seq != t.Seq {
		return false
	}
	delete(s.live, t.Kind)
	return true
}

// Pending reports whether kind has an outstanding ticket.
func (s *Scheduler) Pending(kind domain.TaskKind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.live[kind]
	return ok
}

// Cancel drops the outstanding ticket of kind, if any.
func (s *Scheduler) Cancel(kind domain.TaskKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.live, kind)
}

// CancelAll drops every outstanding ticket.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.live)
}
