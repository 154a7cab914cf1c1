package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
)

// MockViewport is a settable viewport for testing.
type MockViewport struct {
	mu    sync.Mutex
	g     domain.Geometry
	calls int
}

func (m *MockViewport) Geometry() domain.Geometry {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.g
}

func (m *MockViewport) Set(g domain.Geometry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.g = g
}

func (m *MockViewport) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func testSections() []domain.Section {
	return BuildSections(domain.Document{Snippet: "A. B. C. D."})
}

func testAnchors(offsets ...float64) []domain.Anchor {
	anchors := make([]domain.Anchor, len(offsets))
	for i, off := range offsets {
		anchors[i] = domain.Anchor{SectionID: domain.SectionIDs[i], Offset: off}
	}
	return anchors
}

func TestReadProgress(t *testing.T) {
	tests := []struct {
		name string
		g    domain.Geometry
		want float64
	}{
		{"halfway", domain.Geometry{ScrollTop: 250, ScrollHeight: 1000, ClientHeight: 500}, 0.5},
		{"top", domain.Geometry{ScrollTop: 0, ScrollHeight: 1000, ClientHeight: 500}, 0},
		{"bottom", domain.Geometry{ScrollTop: 500, ScrollHeight: 1000, ClientHeight: 500}, 1},
		{"overscroll clamps", domain.Geometry{ScrollTop: 900, ScrollHeight: 1000, ClientHeight: 500}, 1},
		{"negative clamps", domain.Geometry{ScrollTop: -20, ScrollHeight: 1000, ClientHeight: 500}, 0},
		{"content fits", domain.Geometry{ScrollTop: 0, ScrollHeight: 300, ClientHeight: 500}, 0},
		{"exact fit", domain.Geometry{ScrollTop: 10, ScrollHeight: 500, ClientHeight: 500}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReadProgress(tt.g))
		})
	}
}

func TestResolveActiveSection(t *testing.T) {
	tests := []struct {
		name    string
		anchors []domain.Anchor
		want    string
	}{
		{"no anchors", nil, "fallback"},
		{"all below tolerance", testAnchors(161, 400), "fallback"},
		{"at tolerance edge qualifies", testAnchors(160, 400), domain.SectionAbstract},
		{"closest to line", testAnchors(-300, 100, 500), domain.SectionKeyIdeas},
		{"above line beats far below", testAnchors(-300, -10, 170), domain.SectionKeyIdeas},
		{"tie goes to earliest", testAnchors(-500, 110, 130), domain.SectionKeyIdeas},
		{"exactly on line", testAnchors(-200, 0, 120), domain.SectionMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveActiveSection(tt.anchors, 120, 40, "fallback"))
		})
	}
}

func TestScrollTracker_InitialState(t *testing.T) {
	tr := NewScrollTracker(domain.DefaultReaderSettings(), testSections(), nil, nil)

	state := tr.State()

	assert.Equal(t, domain.SectionAbstract, state.ActiveSectionID)
	assert.Equal(t, 0.0, state.ReadProgress)
}

func TestScrollTracker_NoViewportIgnoresScroll(t *testing.T) {
	tr := NewScrollTracker(domain.DefaultReaderSettings(), testSections(), nil, nil)

	_, ok := tr.OnScroll()

	assert.False(t, ok)
}

func TestScrollTracker_AttachRecomputes(t *testing.T) {
	vp := &MockViewport{}
	vp.Set(domain.Geometry{
		ScrollTop: 250, ScrollHeight: 1000, ClientHeight: 500,
		Anchors: testAnchors(-400, -100, 100, 400, 700),
	})
	tr := NewScrollTracker(domain.DefaultReaderSettings(), testSections(), nil, nil)

	state := tr.Attach(vp)

	assert.Equal(t, 0.5, state.ReadProgress)
	assert.Equal(t, domain.SectionMethod, state.ActiveSectionID)
}

func TestScrollTracker_CoalescesBursts(t *testing.T) {
	vp := &MockViewport{}
	sched := NewScheduler()
	tr := NewScrollTracker(domain.DefaultReaderSettings(), testSections(), vp, sched)

	ticket, ok := tr.OnScroll()
	require.True(t, ok)
	assert.Equal(t, domain.TaskFrame, ticket.Kind)

	for i := 0; i < 20; i++ {
		_, ok := tr.OnScroll()
		assert.False(t, ok, "scroll %d should coalesce into the pending frame", i)
	}
	assert.Equal(t, 0, vp.Calls(), "no geometry reads before the frame runs")

	vp.Set(domain.Geometry{ScrollTop: 250, ScrollHeight: 1000, ClientHeight: 500, Anchors: testAnchors(-200, 110)})
	state, ran := tr.OnFrame(ticket)

	require.True(t, ran)
	assert.Equal(t, 1, vp.Calls())
	assert.Equal(t, 0.5, state.ReadProgress)
	assert.Equal(t, domain.SectionKeyIdeas, state.ActiveSectionID)

	_, ok = tr.OnScroll()
	assert.True(t, ok, "a new frame can be requested after the previous one ran")
}

func TestScrollTracker_StaleFrameIgnored(t *testing.T) {
	vp := &MockViewport{}
	tr := NewScrollTracker(domain.DefaultReaderSettings(), testSections(), vp, nil)

	ticket, ok := tr.OnScroll()
	require.True(t, ok)

	_, ran := tr.OnFrame(ticket)
	require.True(t, ran)

	_, ran = tr.OnFrame(ticket)
	assert.False(t, ran)

	_, ran = tr.OnFrame(domain.Ticket{Kind: domain.TaskToast, Seq: ticket.Seq})
	assert.False(t, ran)
}

func TestScrollTracker_CloseCancelsPendingFrame(t *testing.T) {
	vp := &MockViewport{}
	vp.Set(domain.Geometry{ScrollTop: 500, ScrollHeight: 1000, ClientHeight: 500})
	tr := NewScrollTracker(domain.DefaultReaderSettings(), testSections(), vp, nil)

	ticket, ok := tr.OnScroll()
	require.True(t, ok)

	tr.Close()
	state, ran := tr.OnFrame(ticket)

	assert.False(t, ran)
	assert.Equal(t, 0.0, state.ReadProgress)
	assert.Equal(t, 0, vp.Calls())

	_, ok = tr.OnScroll()
	assert.False(t, ok)
}

func TestScrollTracker_AttachAfterCloseStaysClosed(t *testing.T) {
	vp := &MockViewport{}
	vp.Set(domain.Geometry{ScrollTop: 500, ScrollHeight: 1000, ClientHeight: 500})
	tr := NewScrollTracker(domain.DefaultReaderSettings(), testSections(), nil, nil)
	tr.Close()

	state := tr.Attach(vp)

	assert.Equal(t, domain.ViewportState{ActiveSectionID: domain.SectionAbstract}, state)
	assert.Equal(t, 0, vp.Calls())
	_, ok := tr.OnScroll()
	assert.False(t, ok)
}

func TestScrollTracker_Reset(t *testing.T) {
	vp := &MockViewport{}
	vp.Set(domain.Geometry{ScrollTop: 500, ScrollHeight: 1000, ClientHeight: 500, Anchors: testAnchors(-300, 0)})
	tr := NewScrollTracker(domain.DefaultReaderSettings(), testSections(), nil, nil)
	tr.Attach(vp)
	require.Equal(t, domain.SectionKeyIdeas, tr.State().ActiveSectionID)

	pending, ok := tr.OnScroll()
	require.True(t, ok)

	tr.Reset([]domain.Section{{ID: "only"}})

	assert.Equal(t, domain.ViewportState{ActiveSectionID: "only"}, tr.State())
	_, ran := tr.OnFrame(pending)
	assert.False(t, ran)
}

func TestScrollTracker_ReadingLineFromSettings(t *testing.T) {
	settings := domain.DefaultReaderSettings()
	settings.ReadingLine = 0
	settings.ReadingTolerance = 0

	vp := &MockViewport{}
	vp.Set(domain.Geometry{Anchors: testAnchors(0, 20)})
	tr := NewScrollTracker(settings, testSections(), nil, nil)

	assert.Equal(t, domain.SectionAbstract, tr.Attach(vp).ActiveSectionID)
}
