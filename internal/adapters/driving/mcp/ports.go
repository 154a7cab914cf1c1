package mcp

import (
	"github.com/custodia-labs/sercha-reader/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides search capabilities.
	Search driving.SearchService

	// Reader derives sections, hits and evidence for read_document.
	Reader driving.ReaderService

	// Export formats and copies citations for cite_document.
	Export driving.ExportService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil || p.Search == nil {
		return ErrMissingSearchService
	}
	// Reader and Export are checked by the tools that use them.
	return nil
}
