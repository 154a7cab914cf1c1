// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary marks section titles and categories.
	Secondary lipgloss.Color

	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color

	// Mark is the background of matched query tokens.
	Mark lipgloss.Color

	// Evidence fills the evidence strength bars.
	Evidence lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"), // Purple
		Secondary:  lipgloss.Color("#06B6D4"), // Cyan
		Foreground: lipgloss.Color("#CDD6F4"),
		Muted:      lipgloss.Color("#6C7086"),
		Success:    lipgloss.Color("#A6E3A1"),
		Warning:    lipgloss.Color("#F9E2AF"),
		Error:      lipgloss.Color("#F38BA8"),
		Border:     lipgloss.Color("#45475A"),
		Mark:       lipgloss.Color("#FAB387"), // Peach
		Evidence:   lipgloss.Color("#89B4FA"), // Blue
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style

	// InputField style for input areas.
	InputField lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	Help   lipgloss.Style
	Border lipgloss.Style

	// Mark renders matched query tokens.
	Mark lipgloss.Style

	// Card frames a search result.
	Card lipgloss.Style

	// SelectedCard frames the selected search result.
	SelectedCard lipgloss.Style

	// SectionTitle renders reader section headings.
	SectionTitle lipgloss.Style

	// ActiveSection renders the outline entry being read.
	ActiveSection lipgloss.Style

	// EvidenceFull and EvidenceEmpty draw evidence bars.
	EvidenceFull  lipgloss.Style
	EvidenceEmpty lipgloss.Style

	// Toast renders transient notifications; ToastFailure renders failed ones.
	Toast        lipgloss.Style
	ToastFailure lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#181825")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		Mark: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1E1E2E")).
			Background(theme.Mark),

		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(theme.Border).
			PaddingLeft(1),

		SelectedCard: lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderForeground(theme.Primary).
			PaddingLeft(1),

		SectionTitle: lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(theme.Secondary),

		ActiveSection: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		EvidenceFull: lipgloss.NewStyle().
			Foreground(theme.Evidence),

		EvidenceEmpty: lipgloss.NewStyle().
			Foreground(theme.Border),

		Toast: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Success),

		ToastFailure: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Error),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// RenderSegments renders highlight segments, drawing matched spans with Mark
// and the rest with base.
func (s *Styles) RenderSegments(segments []domain.Segment, base lipgloss.Style) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.Text == "" {
			continue
		}
		if seg.Matched {
			b.WriteString(s.Mark.Render(seg.Text))
			continue
		}
		b.WriteString(base.Render(seg.Text))
	}
	return b.String()
}

// EvidenceBar draws strength in [0,1] as a bar of width cells.
func (s *Styles) EvidenceBar(strength float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(strength*float64(width) + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return s.EvidenceFull.Render(strings.Repeat("█", filled)) +
		s.EvidenceEmpty.Render(strings.Repeat("░", width-filled))
}
