package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/sercha-reader/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/sercha-reader/internal/core/domain"
	"github.com/custodia-labs/sercha-reader/internal/core/ports/driven"
)

// Ensure Store implements the interfaces.
var (
	_ driven.SearchBackend = (*Store)(nil)
	_ driven.CategoryStore = (*Store)(nil)
)

// DatabaseFile is the name of the database file in the data directory.
const DatabaseFile = "reader.db"

// Store is a SQLite-backed document and category store.
type Store struct {
	db   *sql.DB
	path string
}

// ImportSummary describes a completed import.
type ImportSummary struct {
	Source     string
	Documents  int
	Categories int
}

// NewStore creates a SQLite store in dataDir.
// If dataDir is empty, defaults to ~/.sercha-reader/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".sercha-reader", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// WAL lets the TUI read while an import runs from another process.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate applies pending up migrations in version order.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= current {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("starting migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
	}
	return nil
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	err := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&v)
	return v, err
}

// ==================== Import ====================

// Import replaces the stored corpus in a single transaction.
// Documents and categories keep the order they are given in.
func (s *Store) Import(
	ctx context.Context, source string, categories []domain.Category, docs []domain.Document,
) (ImportSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("starting import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM documents"); err != nil {
		return ImportSummary{}, fmt.Errorf("clearing documents: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM categories"); err != nil {
		return ImportSummary{}, fmt.Errorf("clearing categories: %w", err)
	}

	for i, c := range categories {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO categories (id, name, count, position) VALUES (?, ?, ?, ?)",
			c.ID, c.Name, c.Count, i)
		if err != nil {
			return ImportSummary{}, fmt.Errorf("inserting category %s: %w", c.ID, err)
		}
	}
	for i, d := range docs {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO documents (id, title, category, score, snippet, position) VALUES (?, ?, ?, ?, ?, ?)",
			d.ID, d.Title, d.Category, d.Score, d.Snippet, i)
		if err != nil {
			return ImportSummary{}, fmt.Errorf("inserting document %s: %w", d.ID, err)
		}
	}

	summary := ImportSummary{Source: source, Documents: len(docs), Categories: len(categories)}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO imports (source, documents, categories) VALUES (?, ?, ?)",
		summary.Source, summary.Documents, summary.Categories)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("recording import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return ImportSummary{}, fmt.Errorf("committing import: %w", err)
	}
	return summary, nil
}

// LastImport returns the most recent import, or ErrNotFound if none.
func (s *Store) LastImport(ctx context.Context) (ImportSummary, error) {
	var sum ImportSummary
	err := s.db.QueryRowContext(ctx,
		"SELECT source, documents, categories FROM imports ORDER BY id DESC LIMIT 1",
	).Scan(&sum.Source, &sum.Documents, &sum.Categories)
	if errors.Is(err, sql.ErrNoRows) {
		return ImportSummary{}, domain.ErrNotFound
	}
	if err != nil {
		return ImportSummary{}, fmt.Errorf("querying imports: %w", err)
	}
	return sum, nil
}

// ==================== Search ====================

// Search returns documents whose title, snippet or category contains any
// query token, in import order. A non-positive limit returns all matches.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]domain.Document, error) {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return nil, nil
	}

	var (
		clauses []string
		args    []any
	)
	for _, tok := range tokens {
		pattern := "%" + escapeLike(tok) + "%"
		clauses = append(clauses,
			`(title LIKE ? ESCAPE '\' OR snippet LIKE ? ESCAPE '\' OR category LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}

	q := "SELECT id, title, category, score, snippet FROM documents WHERE " +
		strings.Join(clauses, " OR ") + " ORDER BY position"
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("searching documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(&d.ID, &d.Title, &d.Category, &d.Score, &d.Snippet); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Get retrieves a document by id.
func (s *Store) Get(ctx context.Context, id string) (*domain.Document, error) {
	var d domain.Document
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, category, score, snippet FROM documents WHERE id = ?", id,
	).Scan(&d.ID, &d.Title, &d.Category, &d.Score, &d.Snippet)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}
	return &d, nil
}

// Categories lists the taxonomy in import order.
func (s *Store) Categories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, count FROM categories ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var cats []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// Count returns the number of stored documents.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

// escapeLike escapes LIKE wildcards so tokens match literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
