// Package sqlite provides a SQLite-backed document and category store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. A single Store implements both driven.SearchBackend and
// driven.CategoryStore, so it can stand in for the in-memory corpus once a
// corpus has been imported.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.sercha-reader/data/reader.db
package sqlite
