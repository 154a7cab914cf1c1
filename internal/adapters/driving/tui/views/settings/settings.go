// Package settings provides the reader settings view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-reader/internal/core/domain"
	"github.com/custodia-labs/sercha-reader/internal/core/ports/driving"
)

// ErrNoSettingsService is reported when the view has nothing to load from.
var ErrNoSettingsService = errors.New("settings service not available")

// field is one adjustable setting.
type field struct {
	label  string
	value  func(s *domain.AppSettings) string
	adjust func(s *domain.AppSettings, dir int)
}

// fields lists the editable settings in display order.
var fields = []field{
	{
		label:  "Reading line",
		value:  func(s *domain.AppSettings) string { return fmt.Sprintf("%g", s.Reader.ReadingLine) },
		adjust: func(s *domain.AppSettings, dir int) { s.Reader.ReadingLine = stepFloat(s.Reader.ReadingLine, 10, dir, 0) },
	},
	{
		label: "Reading tolerance",
		value: func(s *domain.AppSettings) string { return fmt.Sprintf("%g", s.Reader.ReadingTolerance) },
		adjust: func(s *domain.AppSettings, dir int) {
			s.Reader.ReadingTolerance = stepFloat(s.Reader.ReadingTolerance, 5, dir, 0)
		},
	},
	{
		label: "Evidence saturation",
		value: func(s *domain.AppSettings) string { return fmt.Sprintf("%.1f", s.Reader.EvidenceSaturation) },
		adjust: func(s *domain.AppSettings, dir int) {
			s.Reader.EvidenceSaturation = stepFloat(s.Reader.EvidenceSaturation, 0.1, dir, 0.1)
		},
	},
	{
		label: "Row height",
		value: func(s *domain.AppSettings) string { return fmt.Sprintf("%d", s.Reader.RowHeight) },
		adjust: func(s *domain.AppSettings, dir int) {
			s.Reader.RowHeight = max(1, s.Reader.RowHeight+dir)
		},
	},
	{
		label:  "Frame rate",
		value:  func(s *domain.AppSettings) string { return fmt.Sprintf("%g/s", s.Reader.FrameRate) },
		adjust: func(s *domain.AppSettings, dir int) { s.Reader.FrameRate = stepFloat(s.Reader.FrameRate, 10, dir, 10) },
	},
	{
		label: "Toast duration",
		value: func(s *domain.AppSettings) string { return s.Reader.ToastDuration.String() },
		adjust: func(s *domain.AppSettings, dir int) {
			s.Reader.ToastDuration = stepDuration(s.Reader.ToastDuration, 100*time.Millisecond, dir, 100*time.Millisecond)
		},
	},
	{
		label: "Search latency",
		value: func(s *domain.AppSettings) string { return s.Reader.SearchLatency.String() },
		adjust: func(s *domain.AppSettings, dir int) {
			s.Reader.SearchLatency = stepDuration(s.Reader.SearchLatency, 50*time.Millisecond, dir, 0)
		},
	},
	{
		label: "Store backend",
		value: func(s *domain.AppSettings) string { return s.Store.Backend.String() },
		adjust: func(s *domain.AppSettings, _ int) {
			if s.Store.Backend == domain.StoreSQLite {
				s.Store.Backend = domain.StoreMemory
				return
			}
			s.Store.Backend = domain.StoreSQLite
		},
	},
}

func stepFloat(v, step float64, dir int, lowest float64) float64 {
	v += step * float64(dir)
	// Round away float drift from repeated tenths.
	v = float64(int64(v*1000+0.5)) / 1000
	return max(lowest, v)
}

func stepDuration(v, step time.Duration, dir int, lowest time.Duration) time.Duration {
	return max(lowest, v+step*time.Duration(dir))
}

// View edits the reader settings.
// Edits are kept in a draft until saved.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	settingsService driving.SettingsService

	// saved is the last loaded or saved state; draft holds unsaved edits.
	saved *domain.AppSettings
	draft *domain.AppSettings
	err   error

	selected int

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, km *keymap.KeyMap, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:          s,
		keymap:          km,
		settingsService: settingsService,
	}
}

// Init loads the current settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	service := v.settingsService
	return func() tea.Msg {
		if service == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		settings, err := service.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// saveSettings returns a command that persists the draft.
func (v *View) saveSettings() tea.Cmd {
	service := v.settingsService
	draft := *v.draft
	return func() tea.Msg {
		if service == nil {
			return messages.SettingsSaved{Err: ErrNoSettingsService}
		}
		if err := service.Save(&draft); err != nil {
			return messages.SettingsSaved{Err: err}
		}
		return messages.SettingsSaved{Settings: &draft}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.SettingsLoaded:
		v.err = msg.Err
		if msg.Err == nil && msg.Settings != nil {
			v.setSettings(msg.Settings)
		}
		return v, nil

	case messages.SettingsSaved:
		v.err = msg.Err
		if msg.Err == nil && msg.Settings != nil {
			v.setSettings(msg.Settings)
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) setSettings(s *domain.AppSettings) {
	saved := *s
	draft := *s
	v.saved = &saved
	v.draft = &draft
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	if keymap.Matches(k, v.keymap.Back) {
		if v.saved != nil {
			v.setSettings(v.saved)
		}
		v.err = nil
		return v, func() tea.Msg {
			return messages.SettingsClosed{}
		}
	}

	if v.draft == nil {
		return v, nil
	}

	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < len(fields)-1 {
			v.selected++
		}
	case keymap.Matches(k, v.keymap.Increase):
		fields[v.selected].adjust(v.draft, 1)
	case keymap.Matches(k, v.keymap.Decrease):
		fields[v.selected].adjust(v.draft, -1)
	case keymap.Matches(k, v.keymap.Reset):
		defaults := domain.DefaultAppSettings()
		defaults.Store = v.draft.Store
		*v.draft = defaults
	case keymap.Matches(k, v.keymap.Save):
		if err := v.draft.Validate(); err != nil {
			v.err = err
			return v, nil
		}
		return v, v.saveSettings()
	}
	return v, nil
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	// Error display
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	// Loading state
	if v.draft == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	for i, f := range fields {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		line := fmt.Sprintf("%s%-20s %s", indicator, f.label+":", f.value(v.draft))
		if f.value(v.draft) != f.value(v.saved) {
			line += " *"
		}

		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.Dirty() {
		b.WriteString(v.styles.Warning.Render("Unsaved changes"))
	} else {
		b.WriteString(v.styles.Success.Render("Saved"))
	}
	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderHelp() string {
	parts := make([]string, 0, len(v.keymap.SettingsHelp())+1)
	for _, binding := range v.keymap.SettingsHelp() {
		h := binding.Help()
		parts = append(parts, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	parts = append(parts, "Store changes apply on next start")
	return v.styles.Help.Render(strings.Join(parts, "  "))
}

// Dirty reports whether the draft differs from the saved settings.
func (v *View) Dirty() bool {
	return v.draft != nil && v.saved != nil && *v.draft != *v.saved
}

// Draft returns the settings being edited, nil until loaded.
func (v *View) Draft() *domain.AppSettings {
	return v.draft
}

// Selected returns the index of the highlighted setting.
func (v *View) Selected() int {
	return v.selected
}

// Err returns the last load or save error.
func (v *View) Err() error {
	return v.err
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Ready reports whether the view has dimensions.
func (v *View) Ready() bool {
	return v.ready
}
