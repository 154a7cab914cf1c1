package services

import (
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
	"github.com/custodia-labs/sercha-reader/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-reader/internal/logger"
)

var readerLog = logger.Scope("reader")

// Ensure the reader types implement the interfaces.
var (
	_ driving.ReaderService = (*Reader)(nil)
	_ driving.ReaderSession = (*ReaderSession)(nil)
)

// Reader owns the lifecycle of reader sessions. Opening a document replaces
// the session wholesale; nothing survives from one document to the next.
type Reader struct {
	mu        sync.Mutex
	settings  domain.ReaderSettings
	scheduler *Scheduler
	session   *ReaderSession
}

// NewReader creates a reader. The scheduler is shared with the presentation
// layer so frame tickets and other timers draw from one sequence.
func NewReader(settings domain.ReaderSettings, scheduler *Scheduler) *Reader {
	if scheduler == nil {
		scheduler = NewScheduler()
	}
	return &Reader{settings: settings, scheduler: scheduler}
}

// Open discards the current session and starts a fresh one for doc.
func (r *Reader) Open(doc domain.Document, query string) driving.ReaderSession {
	return r.OpenSession(doc, query)
}

// OpenSession is Open returning the concrete session type.
func (r *Reader) OpenSession(doc domain.Document, query string) *ReaderSession {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session != nil {
		r.session.close()
	}
	r.session = newReaderSession(doc, query, r.settings, r.scheduler)
	readerLog.Debug("opened %q (session %s)", doc.ID, r.session.id)
	return r.session
}

// Close discards the current session.
func (r *Reader) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session == nil {
		return
	}
	readerLog.Debug("closed session %s", r.session.id)
	r.session.close()
	r.session = nil
}

// Session returns the current session or nil.
func (r *Reader) Session() driving.ReaderSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil {
		return nil
	}
	return r.session
}

// Settings returns the reader settings applied to new sessions.
func (r *Reader) Settings() domain.ReaderSettings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings
}

// SetSettings changes the settings used by sessions opened afterwards.
func (r *Reader) SetSettings(s domain.ReaderSettings) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = s
}

// ReaderSession is the state of one opened document.
type ReaderSession struct {
	mu       sync.RWMutex
	id       string
	doc      domain.Document
	sections []domain.Section
	settings domain.ReaderSettings
	matchers MatcherCache
	query    string
	hits     domain.HitStatistics
	evidence domain.EvidenceMap
	tracker  *ScrollTracker
}

// NewReaderSession creates a standalone session, useful outside the TUI.
func NewReaderSession(doc domain.Document, query string, settings domain.ReaderSettings) *ReaderSession {
	return newReaderSession(doc, query, settings, NewScheduler())
}

func newReaderSession(
	doc domain.Document,
	query string,
	settings domain.ReaderSettings,
	scheduler *Scheduler,
) *ReaderSession {
	sections := BuildSections(doc)
	s := &ReaderSession{
		id:       uuid.NewString(),
		doc:      doc,
		sections: sections,
		settings: settings,
		tracker:  NewScrollTracker(settings, sections, nil, scheduler),
	}
	s.derive(query)
	return s
}

// ID returns the session id.
func (s *ReaderSession) ID() string {
	return s.id
}

// Document returns the opened document.
func (s *ReaderSession) Document() domain.Document {
	return s.doc
}

// Sections returns a copy of the sections.
func (s *ReaderSession) Sections() []domain.Section {
	out := make([]domain.Section, len(s.sections))
	copy(out, s.sections)
	return out
}

// Query returns the current query.
func (s *ReaderSession) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// SetQuery replaces the query and recomputes hits and evidence.
func (s *ReaderSession) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if query == s.query && s.hits.Sections != nil {
		return
	}
	s.deriveLocked(query)
}

// Hits returns the hit statistics.
func (s *ReaderSession) Hits() domain.HitStatistics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hits
}

// Evidence returns the evidence map.
func (s *ReaderSession) Evidence() domain.EvidenceMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.evidence
}

// Matcher returns the matcher for the current query.
func (s *ReaderSession) Matcher() *TokenMatcher {
	return s.matchers.For(s.Query())
}

// Highlight segments text with the current query.
func (s *ReaderSession) Highlight(text string) []domain.Segment {
	return s.Matcher().Highlight(text)
}

// Viewport returns the scroll-driven state.
func (s *ReaderSession) Viewport() domain.ViewportState {
	return s.tracker.State()
}

// Attach subscribes the session's tracker to v.
func (s *ReaderSession) Attach(v driving.Viewport) domain.ViewportState {
	return s.tracker.Attach(v)
}

// OnScroll forwards a scroll event to the tracker.
func (s *ReaderSession) OnScroll() (domain.Ticket, bool) {
	return s.tracker.OnScroll()
}

// OnFrame runs a frame on the tracker.
func (s *ReaderSession) OnFrame(t domain.Ticket) (domain.ViewportState, bool) {
	return s.tracker.OnFrame(t)
}

// Tracker exposes the scroll tracker.
func (s *ReaderSession) Tracker() *ScrollTracker {
	return s.tracker
}

func (s *ReaderSession) derive(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deriveLocked(query)
}

func (s *ReaderSession) deriveLocked(query string) {
	m := s.matchers.For(query)
	s.query = query
	s.hits = AggregateHits(m, s.doc, s.sections)
	s.evidence = ScoreEvidence(s.sections, s.hits, s.settings.EvidenceSaturation)
}

func (s *ReaderSession) close() {
	s.tracker.Close()
}
