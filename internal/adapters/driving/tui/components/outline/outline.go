// Package outline renders the reader's table of contents with evidence bars.
package outline

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-reader/internal/core/domain"
)

// barWidth is the number of cells of an evidence bar.
const barWidth = 8

// Outline lists sections, marks the active one and shows read progress.
type Outline struct {
	styles   *styles.Styles
	sections []domain.Section
	hits     domain.HitStatistics
	evidence domain.EvidenceMap
	state    domain.ViewportState
	width    int
}

// New creates an outline.
func New(s *styles.Styles) *Outline {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Outline{styles: s, width: 30}
}

// SetSections replaces the sections, hits and evidence shown.
func (o *Outline) SetSections(sections []domain.Section, hits domain.HitStatistics, evidence domain.EvidenceMap) {
	o.sections = sections
	o.hits = hits
	o.evidence = evidence
}

// SetState updates the active section and progress.
func (o *Outline) SetState(state domain.ViewportState) {
	o.state = state
}

// State returns the last viewport state shown.
func (o *Outline) State() domain.ViewportState {
	return o.state
}

// SetWidth sets the outline width.
func (o *Outline) SetWidth(width int) {
	o.width = width
}

// Width returns the outline width.
func (o *Outline) Width() int {
	return o.width
}

// View renders the outline.
func (o *Outline) View() string {
	lines := make([]string, 0, len(o.sections)+4)
	lines = append(lines,
		o.styles.Subtitle.Render("Contents"),
		o.styles.Muted.Render(fmt.Sprintf("%3d%% read  %d hits", o.Percent(), o.hits.Total)),
		"",
	)

	titleWidth := o.width - barWidth - 4
	if titleWidth < 6 {
		titleWidth = 6
	}

	for _, s := range o.sections {
		marker := "  "
		style := o.styles.Normal
		if s.ID == o.state.ActiveSectionID {
			marker = "▸ "
			style = o.styles.ActiveSection
		}
		title := runewidth.FillRight(runewidth.Truncate(s.Title, titleWidth, "…"), titleWidth)
		lines = append(lines,
			style.Render(marker+title)+" "+o.styles.EvidenceBar(o.evidence.Strength(s.ID), barWidth))
	}

	return strings.Join(lines, "\n")
}

// Percent returns the read progress as a whole percentage.
func (o *Outline) Percent() int {
	return int(o.state.ReadProgress*100 + 0.5)
}
