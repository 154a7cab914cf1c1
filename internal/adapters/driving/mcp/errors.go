// Package mcp provides an MCP (Model Context Protocol) server adapter for the reader.
// It lets AI assistants search documents and read them with query highlights,
// hit statistics and per-section evidence.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrReaderUnavailable is returned by tools that need the reader when none is wired.
var ErrReaderUnavailable = errors.New("mcp: reader service is not configured")

// ErrExportUnavailable is returned by the citation tool when no export service is wired.
var ErrExportUnavailable = errors.New("mcp: export service is not configured")

// ErrUnknownSection is returned when a citation names a section that does not exist.
var ErrUnknownSection = errors.New("mcp: unknown section")
