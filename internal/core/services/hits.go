package services

import "github.com/custodia-labs/sercha-reader/internal/core/domain"

// CountHits returns the number of non-overlapping token matches of query in text.
func CountHits(text, query string) int {
	return NewTokenMatcher(query).Count(text)
}

// Count returns the number of non-overlapping matches in text.
func (m *TokenMatcher) Count(text string) int {
	return len(m.FindAll(text))
}

// AggregateHits counts hits over a document's title, snippet and sections.
// Each section counts its title plus its body.
func AggregateHits(m *TokenMatcher, doc domain.Document, sections []domain.Section) domain.HitStatistics {
	stats := domain.HitStatistics{
		Title:    m.Count(doc.Title),
		Snippet:  m.Count(doc.Snippet),
		Sections: make(map[string]int, len(sections)),
	}

	sum := 0
	for _, s := range sections {
		h := m.Count(s.Title) + m.Count(s.Body)
		stats.Sections[s.ID] = h
		sum += h
	}
	stats.Total = stats.Title + stats.Snippet + sum
	return stats
}
