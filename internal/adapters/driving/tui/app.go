package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui/views/reader"
	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/sercha-reader/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/sercha-reader/internal/core/domain"
	"github.com/custodia-labs/sercha-reader/internal/logger"
)

var tuiLog = logger.Scope("tui")

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	// searchView is the query input and result cards.
	searchView *search.View

	// readerView shows the opened document.
	readerView *reader.View

	// settingsView edits the reader tunables.
	settingsView *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// previousView is restored when the help view closes.
	previousView messages.ViewType

	// settingsReturn is restored when the settings view closes.
	settingsReturn messages.ViewType

	// toast mirrors the notification shown in the status bars.
	toast domain.Notification

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		help:         help.New(),
		searchView:   search.NewView(s, km, ports.Search, ports.Tasks, ports.Highlighter),
		readerView:   reader.NewView(s, km, ports.Reader, ports.Export),
		settingsView: settings.NewView(s, km, ports.Settings),
		currentView:  messages.ViewSearch,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.readerView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("sercha reader"),
		a.searchView.Init(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.DocumentOpened:
		a.openDocument(msg.Document, msg.Query)
		return a, nil

	case messages.ReaderClosed:
		a.currentView = messages.ViewSearch
		return a, nil

	case messages.TaskDue:
		a.handleTaskDue(msg.Ticket)
		return a, nil

	case messages.Notified:
		return a, a.notify(msg.Notification)

	case messages.SettingsReloaded:
		return a, a.applySettings(msg.Settings, msg.Err, "Settings reloaded", "Settings reload failed")

	case messages.SettingsLoaded:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.SettingsSaved:
		a.settingsView, _ = a.settingsView.Update(msg)
		return a, a.applySettings(msg.Settings, msg.Err, "Settings saved", "Settings save failed")

	case messages.SettingsClosed:
		a.currentView = a.settingsReturn
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err

	case messages.Quit:
		return a, tea.Quit

	case messages.SearchCompleted, messages.CategoriesLoaded:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd
	}

	if a.currentView == messages.ViewReader {
		a.readerView, cmd = a.readerView.Update(msg)
		return a, cmd
	}
	a.searchView, cmd = a.searchView.Update(msg)
	return a, cmd
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	if a.currentView == messages.ViewHelp {
		if keymap.Matches(msg.String(), a.keymap.Back) || keymap.Matches(msg.String(), a.keymap.Help) {
			a.currentView = a.previousView
		}
		return a, nil
	}

	if !a.typing() {
		switch {
		case keymap.Matches(msg.String(), a.keymap.Quit):
			return a, tea.Quit
		case keymap.Matches(msg.String(), a.keymap.Help):
			a.previousView = a.currentView
			a.currentView = messages.ViewHelp
			return a, nil
		case keymap.Matches(msg.String(), a.keymap.Settings) && a.currentView != messages.ViewSettings:
			a.settingsReturn = a.currentView
			a.currentView = messages.ViewSettings
			return a, a.settingsView.Init()
		}
	}

	var cmd tea.Cmd
	if a.currentView == messages.ViewSettings {
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd
	}
	if a.currentView == messages.ViewReader {
		a.readerView, cmd = a.readerView.Update(msg)
		return a, cmd
	}
	a.searchView, cmd = a.searchView.Update(msg)
	a.err = a.searchView.Err()
	return a, cmd
}

// typing reports whether a text input has focus, so letters are not shortcuts.
func (a *App) typing() bool {
	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.InputFocused()
	case messages.ViewReader:
		return a.readerView.Refining()
	case messages.ViewHelp, messages.ViewSettings:
	}
	return false
}

func (a *App) openDocument(doc domain.Document, query string) {
	name := doc.Category
	if a.ports.Search != nil {
		name = a.ports.Search.CategoryName(a.ctx, doc.Category)
	}
	a.readerView.Open(doc, query, name)
	a.readerView.SetToast(a.toast)
	a.currentView = messages.ViewReader
}

// handleTaskDue routes a fired timer to the owner of its ticket.
func (a *App) handleTaskDue(t domain.Ticket) {
	switch t.Kind {
	case domain.TaskFrame:
		a.readerView.OnFrame(t)
	case domain.TaskToast:
		if a.ports.Notifications != nil && a.ports.Notifications.Expire(t) {
			a.setToast(domain.Notification{})
		}
	case domain.TaskSearch:
	}
}

// notify shows n and schedules its expiry. A newer notification supersedes
// the expiry of the previous one.
func (a *App) notify(n domain.Notification) tea.Cmd {
	if a.ports.Notifications == nil {
		a.setToast(n)
		return nil
	}
	ticket := a.ports.Notifications.Show(n)
	a.setToast(a.ports.Notifications.Current())
	return tea.Tick(ticket.Delay, func(time.Time) tea.Msg {
		return messages.TaskDue{Ticket: ticket}
	})
}

func (a *App) setToast(n domain.Notification) {
	a.toast = n
	a.searchView.SetToast(n)
	a.readerView.SetToast(n)
}

// applySettings pushes new settings into the services and views and
// reports the outcome as a toast.
func (a *App) applySettings(s *domain.AppSettings, err error, ok, failed string) tea.Cmd {
	if err != nil || s == nil {
		tuiLog.Warn("%s: %v", strings.ToLower(failed), err)
		return a.notify(domain.Notification{Text: failed, Failure: true})
	}

	rs := s.Reader
	a.ports.Reader.SetSettings(rs)
	if a.ports.Notifications != nil {
		a.ports.Notifications.SetDuration(rs.ToastDuration)
	}
	a.readerView.SetSettings(rs)
	tuiLog.Debug("settings applied")
	return a.notify(domain.Notification{Text: ok})
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewReader:
		return a.readerView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewSearch:
	}
	return a.searchView.View()
}

// viewHelp renders all keybindings.
func (a *App) viewHelp() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Title.Render("Help"),
		"",
		a.help.FullHelpView(a.keymap.FullHelp()),
		"",
		a.styles.Help.Render("[esc] back"),
	)
}

// NewProgram creates the Bubbletea program for the app.
// Callers may Send messages such as SettingsReloaded into it.
func (a *App) NewProgram() *tea.Program {
	return tea.NewProgram(a,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(a.ctx),
	)
}

// Run starts the TUI application.
func (a *App) Run() error {
	_, err := a.NewProgram().Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Toast returns the visible notification.
func (a *App) Toast() domain.Notification {
	return a.toast
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.searchView.SetDimensions(width, height)
	a.readerView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
