package driving

import (
	"github.com/custodia-labs/sercha-reader/internal/core/domain"
)

// ReaderSession is the per-document state of an open reader.
type ReaderSession interface {
	// ID uniquely identifies the session.
	ID() string

	// Document returns the opened document.
	Document() domain.Document

	// Sections returns the derived sections in document order.
	Sections() []domain.Section

	// Query returns the current query.
	Query() string

	// SetQuery replaces the query and re-derives hits and evidence.
	SetQuery(query string)

	// Hits returns the hit statistics for the current query.
	Hits() domain.HitStatistics

	// Evidence returns the evidence strength per section.
	Evidence() domain.EvidenceMap

	// Highlight splits text into matched and unmatched segments for the current query.
	Highlight(text string) []domain.Segment

	// Viewport returns the scroll-driven state.
	Viewport() domain.ViewportState

	// Attach subscribes the session to a viewport and recomputes the state from it.
	Attach(v Viewport) domain.ViewportState

	// OnScroll requests a frame for scroll-driven recomputation.
	// ok is false when the event was coalesced into an outstanding frame.
	OnScroll() (t domain.Ticket, ok bool)

	// OnFrame runs a requested frame. ok is false for stale or cancelled tickets.
	OnFrame(t domain.Ticket) (state domain.ViewportState, ok bool)
}

// Viewport reports the live geometry of the scrollable reader content.
type Viewport interface {
	Geometry() domain.Geometry
}

// ReaderService owns the reader session lifecycle.
type ReaderService interface {
	// Open starts a fresh session for doc, discarding any previous one.
	Open(doc domain.Document, query string) ReaderSession

	// Close discards the current session.
	Close()

	// Session returns the current session, or nil when the reader is closed.
	Session() ReaderSession

	// Settings returns the tuning applied to new sessions.
	Settings() domain.ReaderSettings

	// SetSettings changes the tuning for sessions opened afterwards.
	SetSettings(s domain.ReaderSettings)
}

// Highlighter segments text for a query outside of a reader session.
type Highlighter interface {
	Highlight(text, query string) []domain.Segment
}
