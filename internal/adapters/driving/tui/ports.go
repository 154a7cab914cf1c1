// Package tui provides an interactive terminal user interface for the reader.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/sercha-reader/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search queries the external backend.
	Search driving.SearchService

	// Reader owns the reader session.
	Reader driving.ReaderService

	// Tasks issues tickets for frame, toast and search timers.
	Tasks driving.TaskScheduler

	// Notifications holds the toast shown in the status bar.
	Notifications driving.NotificationService

	// Export copies citations and paragraphs.
	Export driving.ExportService

	// Highlighter marks query tokens in result cards.
	Highlighter driving.Highlighter

	// Settings reloads settings after config changes.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(
	search driving.SearchService,
	reader driving.ReaderService,
	tasks driving.TaskScheduler,
) *Ports {
	return &Ports{
		Search: search,
		Reader: reader,
		Tasks:  tasks,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Reader == nil {
		return ErrMissingReaderService
	}
	if p.Tasks == nil {
		return ErrMissingScheduler
	}
	return nil
}
