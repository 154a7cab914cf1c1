package services

import (
	"math"
	"sync"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
	"github.com/custodia-labs/sercha-reader/internal/core/ports/driving"
)

// ScrollTracker keeps the active section and read progress in sync with a
// scrollable viewport. Scroll events request at most one frame at a time;
// bursts of events coalesce into the outstanding frame.
type ScrollTracker struct {
	mu        sync.Mutex
	settings  domain.ReaderSettings
	sections  []domain.Section
	viewport  driving.Viewport
	scheduler *Scheduler
	frames    *rate.Limiter
	state     domain.ViewportState
	closed    bool
}

// NewScrollTracker creates a tracker for sections. The viewport may be
// attached later; until then scroll events are ignored.
func NewScrollTracker(
	settings domain.ReaderSettings,
	sections []domain.Section,
	viewport driving.Viewport,
	scheduler *Scheduler,
) *ScrollTracker {
	if scheduler == nil {
		scheduler = NewScheduler()
	}
	fps := settings.FrameRate
	if fps <= 0 {
		fps = domain.DefaultReaderSettings().FrameRate
	}

	t := &ScrollTracker{
		settings:  settings,
		viewport:  viewport,
		scheduler: scheduler,
		frames:    rate.NewLimiter(rate.Limit(fps), 1),
	}
	t.resetLocked(sections)
	return t
}

// Attach subscribes the tracker to a viewport and recomputes immediately.
// A closed tracker stays closed and keeps its last state.
func (t *ScrollTracker) Attach(v driving.Viewport) domain.ViewportState {
	t.mu.Lock()
	if t.closed {
		defer t.mu.Unlock()
		return t.state
	}
	t.viewport = v
	t.mu.Unlock()
	return t.Recompute()
}

// OnScroll requests a frame. It returns false when the tracker is closed,
// has no viewport, or a frame is already outstanding.
func (t *ScrollTracker) OnScroll() (domain.Ticket, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || t.viewport == nil || t.scheduler.Pending(domain.TaskFrame) {
		return domain.Ticket{}, false
	}
	delay := t.frames.Reserve().Delay()
	return t.scheduler.Schedule(domain.TaskFrame, delay), true
}

// OnFrame runs a frame requested by OnScroll. Stale or cancelled tickets
// are ignored and leave the state untouched.
func (t *ScrollTracker) OnFrame(ticket domain.Ticket) (domain.ViewportState, bool) {
	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()

	if closed || ticket.Kind != domain.TaskFrame || !t.scheduler.Claim(ticket) {
		return t.State(), false
	}
	return t.Recompute(), true
}

// Recompute derives progress and the active section from the current geometry.
func (t *ScrollTracker) Recompute() domain.ViewportState {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed || t.viewport == nil {
		return t.state
	}

	g := t.viewport.Geometry()
	t.state.ReadProgress = ReadProgress(g)
	t.state.ActiveSectionID = ResolveActiveSection(
		g.Anchors, t.settings.ReadingLine, t.settings.ReadingTolerance, t.firstSectionID(),
	)
	return t.state
}

// State returns the current viewport state.
func (t *ScrollTracker) State() domain.ViewportState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Reset returns the tracker to its initial state for a new set of sections.
func (t *ScrollTracker) Reset(sections []domain.Section) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.scheduler.Cancel(domain.TaskFrame)
	t.resetLocked(sections)
}

// Close cancels any outstanding frame and detaches the viewport.
func (t *ScrollTracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.scheduler.Cancel(domain.TaskFrame)
	t.viewport = nil
	t.closed = true
}

func (t *ScrollTracker) resetLocked(sections []domain.Section) {
	t.sections = make([]domain.Section, len(sections))
	copy(t.sections, sections)
	t.state = domain.ViewportState{ActiveSectionID: t.firstSectionID()}
}

func (t *ScrollTracker) firstSectionID() string {
	if len(t.sections) == 0 {
		return ""
	}
	return t.sections[0].ID
}

// ReadProgress returns the scrolled fraction of g in [0,1].
// Content that does not scroll has progress 0.
func ReadProgress(g domain.Geometry) float64 {
	scrollable := g.ScrollHeight - g.ClientHeight
	if scrollable <= 0 {
		return 0
	}
	return clamp01(g.ScrollTop / scrollable)
}

// ResolveActiveSection picks the anchor closest to the reading line among
// anchors no further than tolerance below it. Ties go to the earliest anchor.
// When no anchor qualifies the fallback id is returned.
func ResolveActiveSection(anchors []domain.Anchor, readingLine, tolerance float64, fallback string) string {
	best := fallback
	bestDist := math.Inf(1)
	for _, a := range anchors {
		if a.Offset > readingLine+tolerance {
			continue
		}
		if d := math.Abs(a.Offset - readingLine); d < bestDist {
			bestDist = d
			best = a.SectionID
		}
	}
	return best
}
