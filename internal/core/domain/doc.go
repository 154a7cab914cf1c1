// Package domain defines the core business entities for the Sercha reader.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A search result handed over by the search backend
//   - Category: A taxonomy entry used to label documents
//   - Section: A labelled part of an opened document
//   - HitStatistics / EvidenceMap: Query-derived reader artefacts
//   - ViewportState: Scroll-driven reader state
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
