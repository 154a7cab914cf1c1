package driving

import (
	"context"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
)

// SearchService provides search capabilities to external actors.
type SearchService interface {
	// Search returns documents for query, filtered and ordered per opts.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.Document, error)

	// Get retrieves a document by id.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// Categories lists the taxonomy.
	Categories(ctx context.Context) ([]domain.Category, error)

	// CategoryName resolves a category id to its display name.
	// Unknown ids resolve to themselves.
	CategoryName(ctx context.Context, id string) string
}
