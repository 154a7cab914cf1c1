package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
	"github.com/custodia-labs/sercha-reader/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-reader/internal/core/services"
)

// mockSearchService serves a fixed set of documents.
type mockSearchService struct {
	docs       []domain.Document
	categories []domain.Category
	err        error

	lastOpts domain.SearchOptions
}

func (m *mockSearchService) Search(
	_ context.Context, query string, opts domain.SearchOptions,
) ([]domain.Document, error) {
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return nil, nil
	}
	var out []domain.Document
	for _, d := range m.docs {
		if strings.Contains(strings.ToLower(d.Title+" "+d.Snippet), tokens[0]) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *mockSearchService) Get(_ context.Context, id string) (*domain.Document, error) {
	for i := range m.docs {
		if m.docs[i].ID == id {
			doc := m.docs[i]
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

// mockSettingsService keeps settings in memory.
type mockSettingsService struct {
	settings *domain.AppSettings
	saveErr  error
	saved    int
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.settings == nil {
		defaults := domain.DefaultAppSettings()
		m.settings = &defaults
	}
	s := *m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	s := *settings
	m.settings = &s
	m.saved++
	return nil
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// mockClipboard records written text.
type mockClipboard struct {
	text string
	err  error
}

func (m *mockClipboard) WriteText(_ context.Context, text string) error {
	if m.err != nil {
		return m.err
	}
	m.text = text
	return nil
}

// Interface compliance checks.
var (
	_ driving.SearchService   = (*mockSearchService)(nil)
	_ driving.SettingsService = (*mockSettingsService)(nil)
)

var errBackend = errors.New("backend unavailable")

func testDocuments() []domain.Document {
	return []domain.Document{
		{
			ID:       "1",
			Title:    "Neural Rendering: The Future of GPU Architecture",
			Category: "comp.graphics",
			Score:    0.99,
			Snippet: "The integration of neural networks into the graphics pipeline is redefining " +
				"real-time rendering. We analyze how AI-driven ray tracing outperforms traditional methods...",
		},
		{
			ID:       "2",
			Title:    "Exoplanet Atmospheres Observed by Space Telescopes",
			Category: "sci.space",
			Score:    0.87,
			Snippet:  "Spectroscopy of transiting planets reveals water vapour in hot Jupiter atmospheres.",
		},
	}
}

func testCategories() []domain.Category {
	return []domain.Category{
		{ID: "comp.graphics", Name: "Computer Graphics", Count: 1},
		{ID: "sci.space", Name: "Space Science", Count: 1},
	}
}

// testEnv exposes the mocks behind the services installed by setupTestServices.
type testEnv struct {
	search    *mockSearchService
	settings  *mockSettingsService
	clipboard *mockClipboard
	imported  []string
}

// setupTestServices installs services backed by mocks and the real core
// reader. The returned cleanup restores the previous services.
func setupTestServices() (*testEnv, func()) {
	env := &testEnv{
		search:    &mockSearchService{docs: testDocuments(), categories: testCategories()},
		settings:  &mockSettingsService{},
		clipboard: &mockClipboard{},
	}

	scheduler := services.NewScheduler()
	old := svc
	svc = &Services{
		Search:        env.search,
		Settings:      env.settings,
		Reader:        services.NewReader(domain.DefaultReaderSettings(), scheduler),
		Tasks:         scheduler,
		Notifications: services.NewNotifier(scheduler, 0),
		Export:        services.NewCopier(env.clipboard),
		Highlighter:   services.NewHighlighter(),
		Import: func(_ context.Context, path string) (ImportSummary, error) {
			env.imported = append(env.imported, path)
			return ImportSummary{Source: path, Documents: 2, Categories: 2}, nil
		},
	}
	return env, func() { svc = old }
}
