package domain

// Document represents a single search result as returned by the search backend.
// Documents are immutable once received.
type Document struct {
	// ID is the unique identifier for the document.
	ID string `json:"id" yaml:"id"`

	// Title is the human-readable title.
	Title string `json:"title" yaml:"title"`

	// Category is the taxonomy id the document belongs to.
	Category string `json:"category" yaml:"category"`

	// Score is the backend's confidence in the range 0..1.
	Score float64 `json:"score" yaml:"score"`

	// Snippet is the free-text body shown in results and used to derive sections.
	Snippet string `json:"snippet" yaml:"snippet"`
}

// ScorePercent returns the score as a rounded percentage clamped to 0..100.
func (d Document) ScorePercent() int {
	s := d.Score
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	return int(s*100 + 0.5)
}

// Category is a taxonomy entry. The reader only consumes it as an id to name lookup.
type Category struct {
	// ID is the taxonomy identifier, e.g. "comp.graphics".
	ID string `json:"id" yaml:"id"`

	// Name is the display name, e.g. "Computer Graphics".
	Name string `json:"name" yaml:"name"`

	// Count is the number of documents known in the category.
	Count int `json:"count" yaml:"count"`
}

// CategoryName resolves a category id against a list of categories.
// It falls back to the id itself when no entry matches.
func CategoryName(categories []Category, id string) string {
	for _, c := range categories {
		if c.ID == id && c.Name != "" {
			return c.Name
		}
	}
	return id
}
