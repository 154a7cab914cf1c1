// Package reader provides the document reader view: highlighted sections,
// an outline with evidence bars and scroll-synchronised progress.
package reader

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui/components/outline"
	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-reader/internal/core/domain"
	"github.com/custodia-labs/sercha-reader/internal/core/ports/driving"
)

const (
	outlineWidth = 30
	headerLines  = 4 // title, meta line, blank, status gap
)

var _ driving.Viewport = (*View)(nil)

// anchorLine is the content line a section heading was rendered on.
type anchorLine struct {
	sectionID string
	line      int
}

// View is the reader view. It owns the scrollable content and reports its
// geometry to the session, measured in rows times the configured row height.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	viewport  viewport.Model
	outline   *outline.Outline
	statusbar *status.Bar
	refine    *input.QueryInput

	readerService driving.ReaderService
	export        driving.ExportService
	ctx           context.Context

	session      driving.ReaderSession
	categoryName string
	anchors      []anchorLine
	settings     domain.ReaderSettings

	width    int
	height   int
	ready    bool
	refining bool
}

// NewView creates a reader view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	readerService driving.ReaderService,
	export driving.ExportService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	refine := input.NewQueryInput(s, "Refine")
	refine.Blur()

	v := &View{
		styles:        s,
		keymap:        km,
		viewport:      vp,
		outline:       outline.New(s),
		statusbar:     status.NewBar(s, km),
		refine:        refine,
		readerService: readerService,
		export:        export,
		ctx:           context.Background(),
		settings:      domain.DefaultReaderSettings(),
		width:         80,
		height:        24,
	}
	v.statusbar.SetState(status.StateReading)
	v.outline.SetWidth(outlineWidth)
	return v
}

// WithContext sets the context used for copy actions.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Open starts a reader session for doc and attaches this view to it.
func (v *View) Open(doc domain.Document, query, categoryName string) {
	if v.readerService == nil {
		return
	}
	v.settings = v.readerService.Settings()
	v.session = v.readerService.Open(doc, query)
	v.categoryName = categoryName
	v.refining = false
	v.refine.Blur()

	v.render()
	v.viewport.GotoTop()
	v.applyState(v.session.Attach(v))
}

// Close ends the session and detaches the view.
func (v *View) Close() {
	if v.readerService != nil {
		v.readerService.Close()
	}
	v.session = nil
	v.anchors = nil
	v.refining = false
	v.viewport.SetContent("")
	v.statusbar.SetToast(domain.Notification{})
}

// Session returns the open session, or nil.
func (v *View) Session() driving.ReaderSession {
	return v.session
}

// Geometry reports the viewport geometry in layout units.
func (v *View) Geometry() domain.Geometry {
	rh := float64(v.rowHeight())
	top := v.viewport.YOffset

	anchors := make([]domain.Anchor, len(v.anchors))
	for i, a := range v.anchors {
		anchors[i] = domain.Anchor{SectionID: a.sectionID, Offset: float64(a.line-top) * rh}
	}

	return domain.Geometry{
		ScrollTop:    float64(top) * rh,
		ScrollHeight: float64(v.viewport.TotalLineCount()) * rh,
		ClientHeight: float64(v.viewport.Height) * rh,
		Anchors:      anchors,
	}
}

// SetSettings applies reloaded reader settings to the open view.
func (v *View) SetSettings(s domain.ReaderSettings) {
	v.settings = s
	if v.session != nil {
		v.applyState(v.session.Attach(v))
	}
}

// Update handles messages for the reader view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.refining {
			return v.handleRefineKey(msg)
		}
		return v.handleKeyMsg(msg)

	case tea.MouseMsg:
		return v, v.scroll(func() { v.viewport, _ = v.viewport.Update(msg) })
	}
	return v, nil
}

// OnFrame runs a due frame and refreshes the outline.
func (v *View) OnFrame(t domain.Ticket) bool {
	if v.session == nil {
		return false
	}
	state, ok := v.session.OnFrame(t)
	if ok {
		v.applyState(state)
	}
	return ok
}

// SetToast shows or clears a notification in the status bar.
func (v *View) SetToast(n domain.Notification) {
	v.statusbar.SetToast(n)
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.session == nil {
		return v, nil
	}

	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		v.Close()
		return v, func() tea.Msg { return messages.ReaderClosed{} }
	case keymap.Matches(keyStr, v.keymap.CopyCitation):
		return v, v.copyCitation()
	case keymap.Matches(keyStr, v.keymap.CopyParagraph):
		return v, v.copyParagraph()
	case keymap.Matches(keyStr, v.keymap.NextSection):
		return v, v.jump(1)
	case keymap.Matches(keyStr, v.keymap.PrevSection):
		return v, v.jump(-1)
	case keymap.Matches(keyStr, v.keymap.Refine):
		v.refining = true
		v.refine.SetValue(v.session.Query())
		return v, v.refine.Focus()
	}

	return v, v.scroll(func() { v.viewport, _ = v.viewport.Update(msg) })
}

func (v *View) handleRefineKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type { //nolint:exhaustive // handling only relevant key types
	case tea.KeyEnter:
		v.refining = false
		v.refine.Blur()
		v.session.SetQuery(v.refine.Value())
		v.render()
		v.applyState(v.session.Attach(v))
		return v, nil
	case tea.KeyEsc:
		v.refining = false
		v.refine.Blur()
		return v, nil
	}
	var cmd tea.Cmd
	v.refine, cmd = v.refine.Update(msg)
	return v, cmd
}

// scroll applies move and requests a frame when the offset changed.
// Events arriving while a frame is outstanding coalesce into it.
func (v *View) scroll(move func()) tea.Cmd {
	before := v.viewport.YOffset
	move()
	if v.session == nil || v.viewport.YOffset == before {
		return nil
	}

	ticket, ok := v.session.OnScroll()
	if !ok {
		return nil
	}
	return tea.Tick(ticket.Delay, func(time.Time) tea.Msg {
		return messages.TaskDue{Ticket: ticket}
	})
}

// jump scrolls so the neighbouring section heading sits on the reading line.
// The state is recomputed at once instead of waiting for a frame.
func (v *View) jump(dir int) tea.Cmd {
	if len(v.anchors) == 0 {
		return nil
	}

	current := 0
	active := v.session.Viewport().ActiveSectionID
	for i, a := range v.anchors {
		if a.sectionID == active {
			current = i
			break
		}
	}
	target := current + dir
	if target < 0 || target >= len(v.anchors) {
		return nil
	}

	offset := v.anchors[target].line - v.readingRows()
	if offset < 0 {
		offset = 0
	}
	v.viewport.SetYOffset(offset)
	v.applyState(v.session.Attach(v))
	return nil
}

func (v *View) copyCitation() tea.Cmd {
	if v.export == nil {
		return nil
	}
	export, ctx := v.export, v.ctx
	doc, category, query := v.session.Document(), v.categoryName, v.session.Query()
	return func() tea.Msg {
		return messages.Notified{Notification: export.CopyCitation(ctx, doc, category, query)}
	}
}

func (v *View) copyParagraph() tea.Cmd {
	if v.export == nil {
		return nil
	}
	section, ok := v.ActiveSection()
	if !ok {
		return nil
	}
	export, ctx, doc := v.export, v.ctx, v.session.Document()
	return func() tea.Msg {
		return messages.Notified{Notification: export.CopyParagraph(ctx, doc, section)}
	}
}

// ActiveSection returns the section currently being read.
func (v *View) ActiveSection() (domain.Section, bool) {
	if v.session == nil {
		return domain.Section{}, false
	}
	active := v.session.Viewport().ActiveSectionID
	for _, s := range v.session.Sections() {
		if s.ID == active {
			return s, true
		}
	}
	return domain.Section{}, false
}

// render lays out the sections and records the line of every heading.
func (v *View) render() {
	if v.session == nil {
		return
	}

	width := v.viewport.Width - 2
	if width < 20 {
		width = 20
	}
	body := lipgloss.NewStyle().Width(width)

	sections := v.session.Sections()
	v.anchors = make([]anchorLine, 0, len(sections))
	hits := v.session.Hits()

	// The snippet card comes first, as its hits count toward the total.
	var b strings.Builder
	b.WriteString(v.styles.SectionTitle.Render("Highlights") + "  " +
		v.styles.Muted.Render(fmt.Sprintf("snippet hits %d", hits.Snippet)) + "\n" +
		body.Render(v.styles.RenderSegments(v.session.Highlight(v.session.Document().Snippet), v.styles.Normal)) +
		"\n\n")
	line := strings.Count(b.String(), "\n")

	for _, s := range sections {
		v.anchors = append(v.anchors, anchorLine{sectionID: s.ID, line: line})

		text := v.styles.RenderSegments(v.session.Highlight(s.Title), v.styles.SectionTitle) + "  " +
			v.styles.Muted.Render(fmt.Sprintf("hits %d", hits.Sections[s.ID])) + "\n" +
			body.Render(v.styles.RenderSegments(v.session.Highlight(s.Body), v.styles.Normal)) + "\n\n"
		b.WriteString(text)
		line += strings.Count(text, "\n")
	}

	v.viewport.SetContent(strings.TrimSuffix(b.String(), "\n"))
	v.outline.SetSections(sections, v.session.Hits(), v.session.Evidence())
}

func (v *View) applyState(state domain.ViewportState) {
	v.outline.SetState(state)

	title := state.ActiveSectionID
	if s, ok := v.ActiveSection(); ok {
		title = s.Title
	}
	v.statusbar.SetMessage(fmt.Sprintf("%s · %d%%", title, v.outline.Percent()))
}

func (v *View) rowHeight() int {
	if v.settings.RowHeight <= 0 {
		return domain.DefaultReaderSettings().RowHeight
	}
	return v.settings.RowHeight
}

// readingRows is the reading line expressed in rows.
func (v *View) readingRows() int {
	return int(math.Round(v.settings.ReadingLine / float64(v.rowHeight())))
}

// View renders the reader.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}
	if v.session == nil {
		return v.styles.Muted.Render("No document open")
	}

	doc := v.session.Document()
	title := v.styles.RenderSegments(v.session.Highlight(doc.Title), v.styles.Title)
	meta := v.styles.Muted.Render(fmt.Sprintf("%s · %d%% match · query %q",
		v.categoryName, doc.ScorePercent(), v.session.Query()))

	header := []string{title, meta}
	if v.refining {
		header = append(header, v.refine.View())
	} else {
		header = append(header, "")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		v.outline.View(),
		"  ",
		v.viewport.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinVertical(lipgloss.Left, header...),
		body,
		v.statusbar.View(),
	)
}

// SetDimensions sets the view dimensions and re-lays out the content.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.viewport.Width = max(width-outlineWidth-2, 20)
	v.viewport.Height = max(height-headerLines, 3)
	v.refine.SetWidth(width)
	v.statusbar.SetWidth(width)

	if v.session != nil {
		v.render()
		v.applyState(v.session.Attach(v))
	}
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

// Refining reports whether the refine input has focus.
func (v *View) Refining() bool {
	return v.refining
}

// YOffset returns the first visible content line.
func (v *View) YOffset() int {
	return v.viewport.YOffset
}

// Outline returns the outline component.
func (v *View) Outline() *outline.Outline {
	return v.outline
}
