package services

import (
	"github.com/custodia-labs/sercha-reader/internal/core/domain"
	"github.com/custodia-labs/sercha-reader/internal/core/ports/driving"
)

// Ensure Highlighter implements the interface.
var _ driving.Highlighter = (*Highlighter)(nil)

// Highlight splits text into plain and matched segments for query.
func Highlight(text, query string) []domain.Segment {
	return NewTokenMatcher(query).Highlight(text)
}

// Highlight splits text into alternating plain and matched segments.
// The segments cover text exactly; adjacent matches stay separate segments
// and empty plain gaps between them are omitted.
func (m *TokenMatcher) Highlight(text string) []domain.Segment {
	matches := m.FindAll(text)
	if len(matches) == 0 {
		return []domain.Segment{{Text: text}}
	}

	segments := make([]domain.Segment, 0, len(matches)*2+1)
	pos := 0
	for _, loc := range matches {
		if loc[0] > pos {
			segments = append(segments, domain.Segment{Text: text[pos:loc[0]]})
		}
		segments = append(segments, domain.Segment{Matched: true, Text: text[loc[0]:loc[1]]})
		pos = loc[1]
	}
	if pos < len(text) {
		segments = append(segments, domain.Segment{Text: text[pos:]})
	}
	return segments
}

// Highlighter highlights arbitrary text, reusing the matcher while the
// query stays the same. Result lists call it once per rendered field.
type Highlighter struct {
	cache MatcherCache
}

// NewHighlighter creates a highlighter.
func NewHighlighter() *Highlighter {
	return &Highlighter{}
}

// Highlight splits text into plain and matched segments for query.
func (h *Highlighter) Highlight(text, query string) []domain.Segment {
	return h.cache.For(query).Highlight(text)
}
