package mcp

import (
	"context"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results    []domain.Document
	categories []domain.Category
	err        error

	// lastQuery and lastOpts record the most recent Search call.
	lastQuery string
	lastOpts  domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context,
	query string,
	opts domain.SearchOptions,
) ([]domain.Document, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.results, m.err
}

func (m *mockSearchService) Get(_ context.Context, id string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.results {
		if m.results[i].ID == id {
			doc := m.results[i]
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockSearchService) Categories(_ context.Context) ([]domain.Category, error) {
	return m.categories, m.err
}

func (m *mockSearchService) CategoryName(_ context.Context, id string) string {
	return domain.CategoryName(m.categories, id)
}

func testDocument() domain.Document {
	return domain.Document{
		ID:       "1",
		Title:    "Neural Rendering: The Future of GPU Architecture",
		Category: "comp.graphics",
		Score:    0.99,
		Snippet: "The integration of neural networks into the graphics pipeline is redefining " +
			"real-time rendering. We analyze how AI-driven ray tracing outperforms traditional methods...",
	}
}

func testCategories() []domain.Category {
	return []domain.Category{
		{ID: "comp.graphics", Name: "Computer Graphics", Count: 1},
		{ID: "sci.space", Name: "Space Science", Count: 0},
	}
}
