package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
	"github.com/custodia-labs/sercha-reader/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-reader/internal/core/services"
)

// MockSearchService implements driving.SearchService for testing.
type MockSearchService struct {
	SearchFunc func(
		ctx context.Context, query string, opts domain.SearchOptions,
	) ([]domain.Document, error)
	CategoriesFunc func(ctx context.Context) ([]domain.Category, error)
}

func (m *MockSearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.Document, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, opts)
	}
	return nil, nil
}

func (m *MockSearchService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return nil, domain.ErrNotFound
}

func (m *MockSearchService) Categories(ctx context.Context) ([]domain.Category, error) {
	if m.CategoriesFunc != nil {
		return m.CategoriesFunc(ctx)
	}
	return nil, nil
}

func (m *MockSearchService) CategoryName(_ context.Context, id string) string {
	if id == "comp.graphics" {
		return "Computer Graphics"
	}
	return id
}

// MockExportService implements driving.ExportService for testing.
type MockExportService struct {
	CopyCitationFunc func(ctx context.Context, doc domain.Document, categoryName, query string) domain.Notification
}

func (m *MockExportService) Citation(doc domain.Document, _, _ string) string {
	return "Title: " + doc.Title
}

func (m *MockExportService) Paragraph(_ domain.Document, section domain.Section) string {
	return section.Body
}

func (m *MockExportService) CopyCitation(
	ctx context.Context, doc domain.Document, categoryName, query string,
) domain.Notification {
	if m.CopyCitationFunc != nil {
		return m.CopyCitationFunc(ctx, doc, categoryName, query)
	}
	return domain.Notification{Text: "Citation copied"}
}

func (m *MockExportService) CopyParagraph(
	_ context.Context, _ domain.Document, _ domain.Section,
) domain.Notification {
	return domain.Notification{Text: "Paragraph copied"}
}

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct {
	Settings domain.AppSettings
	SaveErr  error
	Saved    *domain.AppSettings
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.Settings
	return &s, nil
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saved = settings
	m.Settings = *settings
	return nil
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Interface compliance checks.
var (
	_ driving.SearchService   = (*MockSearchService)(nil)
	_ driving.ExportService   = (*MockExportService)(nil)
	_ driving.SettingsService = (*MockSettingsService)(nil)
)

func TestNewPorts(t *testing.T) {
	search := &MockSearchService{}
	scheduler := services.NewScheduler()
	reader := services.NewReader(domain.DefaultReaderSettings(), scheduler)

	ports := NewPorts(search, reader, scheduler)

	require.NotNil(t, ports)
	assert.Equal(t, search, ports.Search)
	assert.Equal(t, reader, ports.Reader)
	assert.Equal(t, scheduler, ports.Tasks)
	assert.Nil(t, ports.Notifications)
	assert.Nil(t, ports.Export)
}

func TestPorts_Validate(t *testing.T) {
	scheduler := services.NewScheduler()
	reader := services.NewReader(domain.DefaultReaderSettings(), scheduler)

	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{"nil ports", nil, ErrInvalidPorts},
		{"missing search", &Ports{Reader: reader, Tasks: scheduler}, ErrMissingSearchService},
		{"missing reader", &Ports{Search: &MockSearchService{}, Tasks: scheduler}, ErrMissingReaderService},
		{"missing scheduler", &Ports{Search: &MockSearchService{}, Reader: reader}, ErrMissingScheduler},
		{"valid", NewPorts(&MockSearchService{}, reader, scheduler), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
