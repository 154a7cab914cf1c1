package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
)

func TestScheduler_ScheduleAndClaim(t *testing.T) {
	s := NewScheduler()

	ticket := s.Schedule(domain.TaskFrame, 16*time.Millisecond)

	assert.Equal(t, domain.TaskFrame, ticket.Kind)
	assert.Equal(t, 16*time.Millisecond, ticket.Delay)
	assert.True(t, s.Pending(domain.TaskFrame))
	assert.True(t, s.Claim(ticket))
	assert.False(t, s.Pending(domain.TaskFrame))
	assert.False(t, s.Claim(ticket), "ticket can only be claimed once")
}

func TestScheduler_NewTicketSupersedesOld(t *testing.T) {
	s := NewScheduler()

	old := s.Schedule(domain.TaskToast, time.Second)
	fresh := s.Schedule(domain.TaskToast, time.Second)

	assert.Greater(t, fresh.Seq, old.Seq)
	assert.False(t, s.Claim(old))
	assert.True(t, s.Claim(fresh))
}

func TestScheduler_KindsAreIndependent(t *testing.T) {
	s := NewScheduler()

	frame := s.Schedule(domain.TaskFrame, 0)
	toast := s.Schedule(domain.TaskToast, 0)

	assert.True(t, s.Claim(toast))
	assert.True(t, s.Claim(frame))
}

func TestScheduler_ClaimRejectsForeignKind(t *testing.T) {
	s := NewScheduler()
	frame := s.Schedule(domain.TaskFrame, 0)

	forged := domain.Ticket{Kind: domain.TaskSearch, Seq: frame.Seq}

	assert.False(t, s.Claim(forged))
	assert.True(t, s.Pending(domain.TaskFrame))
}

func TestScheduler_Cancel(t *testing.T) {
	s := NewScheduler()
	ticket := s.Schedule(domain.TaskSearch, 0)

	s.Cancel(domain.TaskSearch)

	assert.False(t, s.Pending(domain.TaskSearch))
	assert.False(t, s.Claim(ticket))
}

func TestScheduler_CancelAll(t *testing.T) {
	s := NewScheduler()
	a := s.Schedule(domain.TaskFrame, 0)
	b := s.Schedule(domain.TaskToast, 0)
	c := s.Schedule(domain.TaskSearch, 0)

	s.CancelAll()

	for _, ticket := range []domain.Ticket{a, b, c} {
		assert.False(t, s.Claim(ticket))
	}
}

func TestScheduler_ConcurrentSchedule(t *testing.T) {
	s := NewScheduler()

	var wg sync.WaitGroup
	tickets := make(chan domain.Ticket, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tickets <- s.Schedule(domain.TaskFrame, 0)
		}()
	}
	wg.Wait()
	close(tickets)

	claimed := 0
	for ticket := range tickets {
		if s.Claim(ticket) {
			claimed++
		}
	}
	assert.Equal(t, 1, claimed, "only the last ticket stays live")
}
