// Package list provides the search result list for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-reader/internal/core/domain"
	"github.com/custodia-labs/sercha-reader/internal/core/ports/driving"
)

// linesPerCard is the height of one rendered result including its spacer.
const linesPerCard = 4

// ResultList displays search results as cards with highlighted query tokens.
type ResultList struct {
	results     []domain.Document
	query       string
	categories  map[string]string
	highlighter driving.Highlighter
	selected    int
	styles      *styles.Styles
	width       int
	height      int
}

// NewResultList creates a new result list component.
// A nil highlighter renders results without marks.
func NewResultList(s *styles.Styles, h driving.Highlighter) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles:      s,
		highlighter: h,
		categories:  make(map[string]string),
		width:       80,
		height:      12,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	visible := r.height / linesPerCard
	if visible < 1 {
		visible = 1
	}
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := start + visible
	if end > len(r.results) {
		end = len(r.results)
	}

	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		cards = append(cards, r.renderCard(i, r.results[i]))
	}
	return strings.Join(cards, "\n")
}

// renderCard formats one result: title with score, category, snippet.
func (r *ResultList) renderCard(index int, doc domain.Document) string {
	inner := r.width - 4
	if inner < 20 {
		inner = 20
	}

	score := fmt.Sprintf("%3d%%", doc.ScorePercent())
	title := doc.Title
	if title == "" {
		title = "(Untitled)"
	}
	title = runewidth.Truncate(title, inner-runewidth.StringWidth(score)-2, "…")

	titleStyle := r.styles.Normal.Bold(true)
	titleLine := r.highlight(title, titleStyle)
	pad := inner - lipgloss.Width(titleLine) - runewidth.StringWidth(score)
	if pad < 1 {
		pad = 1
	}
	titleLine += strings.Repeat(" ", pad) + r.styles.Success.Render(score)

	categoryLine := r.styles.Subtitle.Render(r.categoryName(doc.Category))

	snippet := runewidth.Truncate(strings.Join(strings.Fields(doc.Snippet), " "), inner, "…")
	snippetLine := r.highlight(snippet, r.styles.Muted)

	card := r.styles.Card
	if index == r.selected {
		card = r.styles.SelectedCard
	}
	return card.Render(titleLine+"\n"+categoryLine+"\n"+snippetLine) + "\n"
}

func (r *ResultList) highlight(text string, base lipgloss.Style) string {
	if r.highlighter == nil {
		return base.Render(text)
	}
	return r.styles.RenderSegments(r.highlighter.Highlight(text, r.query), base)
}

func (r *ResultList) categoryName(id string) string {
	if name, ok := r.categories[id]; ok && name != "" {
		return name
	}
	return id
}

// SetResults replaces the results and the query used for highlighting.
func (r *ResultList) SetResults(results []domain.Document, query string) {
	r.results = results
	r.query = query
	r.selected = 0
}

// SetCategories sets the category names shown on cards.
func (r *ResultList) SetCategories(cats []domain.Category) {
	r.categories = make(map[string]string, len(cats))
	for _, c := range cats {
		r.categories[c.ID] = c.Name
	}
}

// Results returns the current results.
func (r *ResultList) Results() []domain.Document {
	return r.results
}

// Query returns the query the results were highlighted with.
func (r *ResultList) Query() string {
	return r.query
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.Document {
	if len(r.results) == 0 || r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
