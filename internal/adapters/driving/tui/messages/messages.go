// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/sercha-reader/internal/core/domain"
)

// SearchCompleted carries search results back to the model.
// Ticket identifies the search; results of a superseded search are dropped.
type SearchCompleted struct {
	Ticket  domain.Ticket
	Query   string
	Results []domain.Document
	Err     error
}

// CategoriesLoaded carries the taxonomy used by the category filter.
type CategoriesLoaded struct {
	Categories []domain.Category
	Err        error
}

// DocumentOpened asks the app to open a document in the reader.
type DocumentOpened struct {
	Document domain.Document
	Query    string
}

// ReaderClosed signals the reader was dismissed.
type ReaderClosed struct{}

// TaskDue is delivered when the timer behind a scheduler ticket fires.
type TaskDue struct {
	Ticket domain.Ticket
}

// Notified carries the outcome of a copy action to show as a toast.
type Notified struct {
	Notification domain.Notification
}

// SettingsReloaded carries settings re-read after the config file changed.
type SettingsReloaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsLoaded carries settings read for the settings view.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved reports the outcome of saving settings from the settings view.
type SettingsSaved struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsClosed signals the settings view was dismissed.
type SettingsClosed struct{}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSearch is the search input and results view.
	ViewSearch ViewType = iota
	// ViewReader is the document reader.
	ViewReader
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewSettings edits the reader tunables.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSearch:
		return "search"
	case ViewReader:
		return "reader"
	case ViewHelp:
		return "help"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
