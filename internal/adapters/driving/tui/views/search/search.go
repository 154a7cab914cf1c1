// Package search provides the search view: query input, result cards and status bar.
package search

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-reader/internal/core/domain"
	"github.com/custodia-labs/sercha-reader/internal/core/ports/driving"
)

// View represents the search view with input, results list, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.ResultList
	statusbar *status.Bar

	searchService driving.SearchService
	tasks         driving.TaskScheduler
	ctx           context.Context
	cancel        context.CancelFunc

	categories []domain.Category
	filter     int // 0 = all categories, otherwise categories[filter-1]
	sort       domain.SortMode
	query      string

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = input mode (typing), false = results mode (navigating)
}

// NewView creates a new search view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	searchService driving.SearchService,
	tasks driving.TaskScheduler,
	highlighter driving.Highlighter,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewQueryInput(s, "Search"),
		list:          list.NewResultList(s, highlighter),
		statusbar:     status.NewBar(s, km),
		searchService: searchService,
		tasks:         tasks,
		ctx:           context.Background(),
		sort:          domain.SortRelevance,
		width:         80,
		height:        24,
		focusInput:    true,
	}
}

// WithContext sets the parent context for searches.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init focuses the input and loads the category filter.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.loadCategories())
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.CategoriesLoaded:
		if msg.Err == nil {
			v.categories = msg.Categories
			v.list.SetCategories(msg.Categories)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.statusbar, cmd = v.statusbar.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.focusInput {
		switch msg.Type { //nolint:exhaustive // handling only relevant key types
		case tea.KeyEnter:
			query := v.input.Value()
			if query == "" {
				return v, nil
			}
			v.focusInput = false
			v.input.Blur()
			return v, v.performSearch(query)
		case tea.KeyEsc:
			if v.list.Count() > 0 {
				v.focusInput = false
				v.input.Blur()
			}
			return v, nil
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Open):
		doc := v.list.SelectedResult()
		if doc == nil {
			return v, nil
		}
		opened := messages.DocumentOpened{Document: *doc, Query: v.list.Query()}
		return v, func() tea.Msg { return opened }
	case keymap.Matches(keyStr, v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(keyStr, v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(keyStr, v.keymap.NewSearch):
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	case keymap.Matches(keyStr, v.keymap.Filter):
		v.cycleFilter()
		return v, v.rerun()
	case keymap.Matches(keyStr, v.keymap.Sort):
		if v.sort == domain.SortScore {
			v.sort = domain.SortRelevance
		} else {
			v.sort = domain.SortScore
		}
		return v, v.rerun()
	}
	return v, nil
}

// cycleFilter advances the category filter, wrapping back to all categories.
func (v *View) cycleFilter() {
	v.filter++
	if v.filter > len(v.categories) {
		v.filter = 0
	}
}

// rerun repeats the last query with the current filter and sort.
func (v *View) rerun() tea.Cmd {
	if v.query == "" {
		return nil
	}
	return v.performSearch(v.query)
}

// performSearch starts a search. Any search still in flight is cancelled and
// its ticket superseded, so only the latest query can land.
func (v *View) performSearch(query string) tea.Cmd {
	if v.searchService == nil || v.tasks == nil {
		return func() tea.Msg { return messages.ErrorOccurred{Err: ErrNoSearchService} }
	}

	if v.cancel != nil {
		v.cancel()
	}
	ctx, cancel := context.WithCancel(v.ctx)
	v.cancel = cancel
	v.query = query
	v.err = nil

	ticket := v.tasks.Schedule(domain.TaskSearch, 0)
	opts := domain.SearchOptions{Sort: v.sort}
	if c := v.Filter(); c != nil {
		opts.Categories = []string{c.ID}
	}
	service := v.searchService

	return tea.Batch(
		v.statusbar.StartSpinner(),
		func() tea.Msg {
			results, err := service.Search(ctx, query, opts)
			return messages.SearchCompleted{Ticket: ticket, Query: query, Results: results, Err: err}
		},
	)
}

// handleSearchCompleted applies the results of the latest search.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if v.tasks == nil || !v.tasks.Claim(msg.Ticket) {
		return
	}
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}

	if msg.Err != nil {
		if errors.Is(msg.Err, context.Canceled) {
			v.statusbar.SetState(status.StateReady)
			return
		}
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.list.SetResults(msg.Results, msg.Query)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(msg.Results))
	v.focusInput = false
	v.input.Blur()
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

// loadCategories fetches the taxonomy for the filter.
func (v *View) loadCategories() tea.Cmd {
	if v.searchService == nil {
		return nil
	}
	service, ctx := v.searchService, v.ctx
	return func() tea.Msg {
		cats, err := service.Categories(ctx)
		return messages.CategoriesLoaded{Categories: cats, Err: err}
	}
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections,
		v.styles.Title.Render("Sercha Reader"),
		"",
		v.input.View(),
		v.renderFilters(),
		"",
	)

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderFilters shows the active category filter and sort order.
func (v *View) renderFilters() string {
	category := "all categories"
	if c := v.Filter(); c != nil {
		category = c.Name
	}
	return v.styles.Muted.Render(fmt.Sprintf("in %s · sorted by %s", category, v.sort))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-9) // header, input, filters, status
	v.statusbar.SetWidth(width)
}

// SetToast shows or clears a notification in the status bar.
func (v *View) SetToast(n domain.Notification) {
	v.statusbar.SetToast(n)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the text in the query input.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the text in the query input.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Results returns the current search results.
func (v *View) Results() []domain.Document {
	return v.list.Results()
}

// SelectedResult returns the currently selected result.
func (v *View) SelectedResult() *domain.Document {
	return v.list.SelectedResult()
}

// Filter returns the selected category, or nil when all categories are shown.
func (v *View) Filter() *domain.Category {
	if v.filter <= 0 || v.filter > len(v.categories) {
		return nil
	}
	return &v.categories[v.filter-1]
}

// Sort returns the result order.
func (v *View) Sort() domain.SortMode {
	return v.sort
}

// Searching reports whether a search is in flight.
func (v *View) Searching() bool {
	return v.statusbar.State() == status.StateSearching
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset resets the view to initial input mode.
func (v *View) Reset() {
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	if v.tasks != nil {
		v.tasks.Cancel(domain.TaskSearch)
	}
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetResults(nil, "")
	v.query = ""
	v.err = nil
	v.statusbar.Clear()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
