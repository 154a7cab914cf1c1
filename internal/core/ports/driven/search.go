package driven

import (
	"context"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
)

// SearchBackend is the external search collaborator.
// It returns documents in its own order; the reader never re-ranks them.
type SearchBackend interface {
	// Search returns the documents matching query. Implementations may
	// take an indeterminate amount of time and must honour ctx cancellation.
	Search(ctx context.Context, query string, limit int) ([]domain.Document, error)

	// Get retrieves a single document by id.
	Get(ctx context.Context, id string) (*domain.Document, error)
}

// CategoryStore is the external taxonomy collaborator.
type CategoryStore interface {
	// Categories lists all known categories.
	Categories(ctx context.Context) ([]domain.Category, error)
}
