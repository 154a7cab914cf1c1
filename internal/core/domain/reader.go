package domain

// Stable section identifiers produced for every opened document.
const (
	SectionAbstract  = "abstract"
	SectionKeyIdeas  = "key-ideas"
	SectionMethod    = "method"
	SectionEvidence  = "evidence"
	SectionTakeaways = "takeaways"
)

// SectionIDs lists the section ids in document order.
var SectionIDs = []string{
	SectionAbstract,
	SectionKeyIdeas,
	SectionMethod,
	SectionEvidence,
	SectionTakeaways,
}

// Section is a labelled part of an opened document.
// Sections are created once per opened document and never mutated.
type Section struct {
	// ID is stable and used as key for anchors, hits and evidence.
	ID string `json:"id"`

	// Title is the heading shown in the outline.
	Title string `json:"title"`

	// Body is the section text.
	Body string `json:"body"`
}

// Segment is one span of highlighted text.
type Segment struct {
	// Matched is true when the span matched a query token.
	Matched bool `json:"matched"`

	// Text is the original text of the span, casing preserved.
	Text string `json:"text"`
}

// HitStatistics aggregates query hits over a document.
// Total always equals Title + Snippet + the sum of Sections.
type HitStatistics struct {
	Total    int            `json:"total"`
	Title    int            `json:"title"`
	Snippet  int            `json:"snippet"`
	Sections map[string]int `json:"sections"`
}

// SectionHits returns the hit count for a section, zero when unknown.
func (h HitStatistics) SectionHits(id string) int {
	return h.Sections[id]
}

// EvidenceMap maps section ids to an evidence strength in [0,1].
type EvidenceMap map[string]float64

// Strength returns the strength for a section, zero when unknown.
func (e EvidenceMap) Strength(id string) float64 {
	return e[id]
}

// ViewportState is the scroll-driven reader state.
type ViewportState struct {
	// ActiveSectionID is the section currently considered in view.
	ActiveSectionID string

	// ReadProgress is the scrolled fraction of the content in [0,1].
	ReadProgress float64
}

// Anchor is the measured position of a section heading.
type Anchor struct {
	// SectionID identifies the section the anchor belongs to.
	SectionID string

	// Offset is the distance from the viewport top, negative once scrolled past.
	Offset float64
}

// Geometry is a snapshot of a scrollable viewport.
// All values share one unit, whatever the presentation layer measures in.
type Geometry struct {
	ScrollTop    float64
	ScrollHeight float64
	ClientHeight float64

	// Anchors are listed in document order.
	Anchors []Anchor
}

// Notification is a transient user-facing message.
type Notification struct {
	Text    string
	Failure bool
}

// IsZero reports whether no notification is set.
func (n Notification) IsZero() bool {
	return n.Text == ""
}

// JoinSegments renders segments back into a string, wrapping matched spans
// with the given markers.
func JoinSegments(segments []Segment, open, closing string) string {
	n := 0
	for _, s := range segments {
		n += len(s.Text)
		if s.Matched {
			n += len(open) + len(closing)
		}
	}

	buf := make([]byte, 0, n)
	for _, s := range segments {
		if s.Matched {
			buf = append(buf, open...)
			buf = append(buf, s.Text...)
			buf = append(buf, closing...)
			continue
		}
		buf = append(buf, s.Text...)
	}
	return string(buf)
}
