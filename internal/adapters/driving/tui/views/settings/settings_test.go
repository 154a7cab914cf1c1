package settings

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-reader/internal/core/domain"
	"github.com/custodia-labs/sercha-reader/internal/core/ports/driving"
)

// MockSettingsService is a mock implementation of driving.SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSettings), args.Error(1)
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	args := m.Called(settings)
	return args.Error(0)
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

var _ driving.SettingsService = (*MockSettingsService)(nil)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// newLoadedView returns a view that has received the default settings.
func newLoadedView(t *testing.T, svc *MockSettingsService) *View {
	t.Helper()
	settings := domain.DefaultAppSettings()
	svc.On("Get").Return(&settings, nil).Once()

	v := NewView(styles.DefaultStyles(), nil, svc)
	v.SetDimensions(80, 24)

	cmd := v.Init()
	require.NotNil(t, cmd)
	v.Update(cmd())
	require.NotNil(t, v.Draft())
	return v
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, nil)

	require.NotNil(t, v)
	assert.False(t, v.Ready())
	assert.Nil(t, v.Draft())
	assert.False(t, v.Dirty())
	assert.Contains(t, v.View(), "Loading settings...")
}

func TestView_Init_LoadsSettings(t *testing.T) {
	svc := new(MockSettingsService)
	v := newLoadedView(t, svc)

	assert.NoError(t, v.Err())
	assert.Equal(t, domain.DefaultAppSettings(), *v.Draft())
	assert.False(t, v.Dirty())

	view := v.View()
	assert.Contains(t, view, "Settings")
	assert.Contains(t, view, "Reading line")
	assert.Contains(t, view, "120")
	assert.Contains(t, view, "1.4s")
	assert.Contains(t, view, "memory")
	svc.AssertExpectations(t)
}

func TestView_Init_NoService(t *testing.T) {
	v := NewView(nil, nil, nil)

	msg := v.Init()()
	v.Update(msg)

	assert.ErrorIs(t, v.Err(), ErrNoSettingsService)
	assert.Nil(t, v.Draft())
	assert.Contains(t, v.View(), "settings service not available")
}

func TestView_Init_LoadError(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Get").Return(nil, errors.New("disk error"))
	v := NewView(nil, nil, svc)

	v.Update(v.Init()())

	assert.EqualError(t, v.Err(), "disk error")
	assert.Nil(t, v.Draft())
}

func TestView_Navigation(t *testing.T) {
	v := newLoadedView(t, new(MockSettingsService))

	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, v.Selected())

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v.Update(keyRune('j'))
	assert.Equal(t, 2, v.Selected())

	for range len(fields) + 3 {
		v.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, len(fields)-1, v.Selected())

	v.Update(keyRune('k'))
	assert.Equal(t, len(fields)-2, v.Selected())
}

func TestView_Adjust(t *testing.T) {
	tests := []struct {
		name  string
		index int
		key   tea.KeyMsg
		check func(t *testing.T, s *domain.AppSettings)
	}{
		{
			name:  "reading line up",
			index: 0,
			key:   tea.KeyMsg{Type: tea.KeyRight},
			check: func(t *testing.T, s *domain.AppSettings) { assert.Equal(t, 130.0, s.Reader.ReadingLine) },
		},
		{
			name:  "reading tolerance down",
			index: 1,
			key:   tea.KeyMsg{Type: tea.KeyLeft},
			check: func(t *testing.T, s *domain.AppSettings) { assert.Equal(t, 35.0, s.Reader.ReadingTolerance) },
		},
		{
			name:  "evidence saturation up",
			index: 2,
			key:   keyRune('+'),
			check: func(t *testing.T, s *domain.AppSettings) { assert.Equal(t, 1.9, s.Reader.EvidenceSaturation) },
		},
		{
			name:  "row height down",
			index: 3,
			key:   keyRune('-'),
			check: func(t *testing.T, s *domain.AppSettings) { assert.Equal(t, 19, s.Reader.RowHeight) },
		},
		{
			name:  "toast duration up",
			index: 5,
			key:   keyRune('l'),
			check: func(t *testing.T, s *domain.AppSettings) {
				assert.Equal(t, 1500*time.Millisecond, s.Reader.ToastDuration)
			},
		},
		{
			name:  "store backend toggles",
			index: 7,
			key:   keyRune('h'),
			check: func(t *testing.T, s *domain.AppSettings) { assert.Equal(t, domain.StoreSQLite, s.Store.Backend) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newLoadedView(t, new(MockSettingsService))
			v.selected = tt.index

			v.Update(tt.key)

			tt.check(t, v.Draft())
			assert.True(t, v.Dirty())
			assert.Contains(t, v.View(), "Unsaved changes")
			assert.Contains(t, v.View(), " *")
		})
	}
}

func TestView_Adjust_ClampsAtLowerBound(t *testing.T) {
	v := newLoadedView(t, new(MockSettingsService))
	v.selected = 6

	for range 20 {
		v.Update(tea.KeyMsg{Type: tea.KeyLeft})
	}

	assert.Equal(t, time.Duration(0), v.Draft().Reader.SearchLatency)
	assert.NoError(t, v.Draft().Validate())
}

func TestView_Reset_KeepsStore(t *testing.T) {
	v := newLoadedView(t, new(MockSettingsService))
	v.draft.Reader.ReadingLine = 300
	v.draft.Store.Backend = domain.StoreSQLite

	v.Update(keyRune('r'))

	assert.Equal(t, domain.DefaultReaderSettings(), v.Draft().Reader)
	assert.Equal(t, domain.StoreSQLite, v.Draft().Store.Backend)
}

func TestView_Save(t *testing.T) {
	svc := new(MockSettingsService)
	v := newLoadedView(t, svc)
	svc.On("Save", mock.MatchedBy(func(s *domain.AppSettings) bool {
		return s.Reader.ReadingLine == 130
	})).Return(nil)

	v.Update(tea.KeyMsg{Type: tea.KeyRight})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.SettingsSaved)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.Equal(t, 130.0, msg.Settings.Reader.ReadingLine)

	v.Update(msg)
	assert.False(t, v.Dirty())
	assert.Contains(t, v.View(), "Saved")
	svc.AssertExpectations(t)
}

func TestView_Save_Error(t *testing.T) {
	svc := new(MockSettingsService)
	v := newLoadedView(t, svc)
	svc.On("Save", mock.Anything).Return(errors.New("read-only"))

	v.Update(tea.KeyMsg{Type: tea.KeyRight})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd().(messages.SettingsSaved)
	v.Update(msg)

	assert.EqualError(t, v.Err(), "read-only")
	assert.Nil(t, msg.Settings)
	assert.True(t, v.Dirty())
}

func TestView_Save_InvalidDraft(t *testing.T) {
	svc := new(MockSettingsService)
	v := newLoadedView(t, svc)
	v.draft.Reader.RowHeight = 0

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.ErrorIs(t, v.Err(), domain.ErrInvalidInput)
	svc.AssertNotCalled(t, "Save", mock.Anything)
}

func TestView_Back_DiscardsDraft(t *testing.T) {
	v := newLoadedView(t, new(MockSettingsService))
	v.Update(tea.KeyMsg{Type: tea.KeyRight})
	require.True(t, v.Dirty())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	_, ok := cmd().(messages.SettingsClosed)
	assert.True(t, ok)
	assert.False(t, v.Dirty())
	assert.Equal(t, 120.0, v.Draft().Reader.ReadingLine)
}

func TestView_KeysIgnoredBeforeLoad(t *testing.T) {
	v := NewView(nil, nil, nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRight})

	assert.Nil(t, cmd)
	assert.Nil(t, v.Draft())
}
