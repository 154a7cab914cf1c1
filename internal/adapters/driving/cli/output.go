package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/custodia-labs/sercha-reader/internal/core/domain"
)

// Plain-text highlight markers used when output is not a terminal.
const (
	markOpen  = "**"
	markClose = "**"
)

// evidenceCells is the width of an evidence bar.
const evidenceCells = 10

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	headingStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	highlightStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#FFD866"))
	barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
)

// display decides between styled terminal output and plain text.
type display struct {
	styled bool
}

// newDisplay styles output only when w is a terminal.
func newDisplay(w io.Writer) display {
	f, ok := w.(*os.File)
	if !ok {
		return display{}
	}
	fd := f.Fd()
	return display{styled: term.IsTerminal(int(fd)) || isatty.IsCygwinTerminal(fd)}
}

// mark renders segments with matched spans emphasised.
func (d display) mark(segments []domain.Segment) string {
	if !d.styled {
		return domain.JoinSegments(segments, markOpen, markClose)
	}
	var b strings.Builder
	for _, s := range segments {
		if s.Matched {
			b.WriteString(highlightStyle.Render(s.Text))
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

func (d display) title(s string) string {
	if !d.styled {
		return s
	}
	return titleStyle.Render(s)
}

func (d display) heading(s string) string {
	if !d.styled {
		return "## " + s
	}
	return headingStyle.Render(s)
}

func (d display) muted(s string) string {
	if !d.styled {
		return s
	}
	return mutedStyle.Render(s)
}

// bar draws an evidence strength in [0,1] as a fixed-width bar.
func (d display) bar(strength float64) string {
	filled := int(math.Round(math.Max(0, math.Min(1, strength)) * evidenceCells))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", evidenceCells-filled)
	if d.styled {
		bar = barStyle.Render(bar)
	}
	return fmt.Sprintf("%s %.2f", bar, strength)
}
