package domain

// SortMode controls the order of search results shown to the user.
type SortMode string

// Available sort modes.
const (
	// SortRelevance keeps the order returned by the search backend.
	SortRelevance SortMode = "relevance"

	// SortScore orders results by descending score.
	SortScore SortMode = "score"
)

// IsValid returns true if the sort mode is recognised.
func (m SortMode) IsValid() bool {
	return m == SortRelevance || m == SortScore
}

// String returns the string representation.
func (m SortMode) String() string {
	return string(m)
}

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the maximum number of results. Zero means no limit.
	Limit int

	// Categories filters results to the given category ids.
	// An empty slice disables the filter.
	Categories []string

	// Sort selects the result order. The zero value behaves as SortRelevance.
	Sort SortMode
}
