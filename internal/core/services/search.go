package services

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
	"github.com/custodia-labs/sercha-reader/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-reader/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-reader/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService wraps the external search backend and taxonomy.
// It only filters and reorders what the backend returns.
type SearchService struct {
	backend    driven.SearchBackend
	categories driven.CategoryStore
}

// NewSearchService creates a new search service.
// The category store is optional; without it category names fall back to ids.
func NewSearchService(backend driven.SearchBackend, categories driven.CategoryStore) *SearchService {
	return &SearchService{
		backend:    backend,
		categories: categories,
	}
}

// Search returns backend results for query filtered by category and ordered per opts.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.Document, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}
	if s.backend == nil {
		return nil, domain.ErrSearchUnavailable
	}

	logger.Section("Search")
	logger.Debug("query=%q categories=%v sort=%s limit=%d", query, opts.Categories, opts.Sort, opts.Limit)
	defer logger.Scope("search").Timed("backend query %q", query)()

	docs, err := s.backend.Search(ctx, query, 0)
	if err != nil {
		return nil, fmt.Errorf("searching backend: %w", err)
	}
	logger.Debug("backend returned %d documents", len(docs))

	docs = FilterByCategory(docs, opts.Categories)
	if opts.Sort == domain.SortScore {
		docs = slices.Clone(docs)
		sort.SliceStable(docs, func(i, j int) bool {
			return docs[i].Score > docs[j].Score
		})
	}
	if opts.Limit > 0 && len(docs) > opts.Limit {
		docs = docs[:opts.Limit]
	}
	return docs, nil
}

// Get retrieves a document by id.
func (s *SearchService) Get(ctx context.Context, id string) (*domain.Document, error) {
	if s.backend == nil {
		return nil, domain.ErrSearchUnavailable
	}
	return s.backend.Get(ctx, id)
}

// Categories lists the taxonomy.
func (s *SearchService) Categories(ctx context.Context) ([]domain.Category, error) {
	if s.categories == nil {
		return nil, nil
	}
	return s.categories.Categories(ctx)
}

// CategoryName resolves a category id to its display name.
func (s *SearchService) CategoryName(ctx context.Context, id string) string {
	cats, err := s.Categories(ctx)
	if err != nil {
		logger.Warn("loading categories: %v", err)
		return id
	}
	return domain.CategoryName(cats, id)
}

// FilterByCategory keeps documents whose category is in ids.
// An empty id list keeps everything.
func FilterByCategory(docs []domain.Document, ids []string) []domain.Document {
	if len(ids) == 0 {
		return docs
	}
	out := make([]domain.Document, 0, len(docs))
	for _, d := range docs {
		if slices.Contains(ids, d.Category) {
			out = append(out, d)
		}
	}
	return out
}
