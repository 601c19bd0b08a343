package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/docvault-labs/docvault/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/docvault-labs/docvault/internal/core/domain"
	"github.com/docvault-labs/docvault/internal/core/ports/driven"
)

// Store is the SQLite-backed document catalog.
type Store struct {
	db   *sql.DB
	path string
}

var _ driven.Catalog = (*Store)(nil)

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.docvault/data/catalog.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docvault", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "catalog.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

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

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// SaveDocument stores or updates a document and its tag memberships in
// a single transaction. Tags named by doc.Tags are created as needed;
// memberships the document no longer carries are retracted and emptied
// tags pruned.
func (s *Store) SaveDocument(ctx context.Context, doc *domain.Document) error {
	if doc.ID == "" || doc.ContentHash == "" {
		return domain.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents
			(id, content_hash, title, media_type, size_bytes, storage_location, summary, created_at, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content_hash = excluded.content_hash,
			title = excluded.title,
			media_type = excluded.media_type,
			size_bytes = excluded.size_bytes,
			storage_location = excluded.storage_location,
			summary = excluded.summary,
			imported_at = excluded.imported_at
	`, doc.ID, doc.ContentHash, doc.Title, doc.MediaType, doc.SizeBytes,
		doc.StorageLocation, doc.Summary, doc.CreatedAt, doc.ImportedAt)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM document_tags WHERE document_id = ?", doc.ID); err != nil {
		return fmt.Errorf("retracting tag memberships: %w", err)
	}

	for _, tag := range doc.Tags {
		tag = domain.NormalizeTag(tag)
		if tag == "" {
			continue
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO tags (name) VALUES (?) ON CONFLICT(name) DO NOTHING", tag); err != nil {
			return fmt.Errorf("creating tag %q: %w", tag, err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO document_tags (tag_name, document_id)
			VALUES (?, ?)
			ON CONFLICT(tag_name, document_id) DO NOTHING
		`, tag, doc.ID); err != nil {
			return fmt.Errorf("adding tag membership %q: %w", tag, err)
		}
	}

	if err := pruneEmptyTags(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *Store) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, content_hash, title, media_type, size_bytes, storage_location, summary, created_at, imported_at
		FROM documents WHERE id = ?
	`, id)

	doc, err := scanDocument(row)
	if err != nil {
		return nil, err
	}

	if doc.Tags, err = s.documentTags(ctx, doc.ID); err != nil {
		return nil, err
	}
	return doc, nil
}

// GetDocumentByHash retrieves a document by content hash.
func (s *Store) GetDocumentByHash(ctx context.Context, contentHash string) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, content_hash, title, media_type, size_bytes, storage_location, summary, created_at, imported_at
		FROM documents WHERE content_hash = ?
	`, contentHash)

	doc, err := scanDocument(row)
	if err != nil {
		return nil, err
	}

	if doc.Tags, err = s.documentTags(ctx, doc.ID); err != nil {
		return nil, err
	}
	return doc, nil
}

// ListDocuments returns documents ordered by import time descending.
func (s *Store) ListDocuments(ctx context.Context, offset, limit int) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content_hash, title, media_type, size_bytes, storage_location, summary, created_at, imported_at
		FROM documents
		ORDER BY imported_at DESC, id
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	return s.collectDocuments(ctx, rows)
}

// DeleteDocument retracts the document from every tag and removes the
// row, pruning emptied tags, all in one transaction.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM document_tags WHERE document_id = ?", id); err != nil {
		return fmt.Errorf("retracting tag memberships: %w", err)
	}

	if err := pruneEmptyTags(ctx, tx); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// SearchText returns documents whose title, summary, or tags contain
// the query as a case-insensitive literal substring.
func (s *Store) SearchText(ctx context.Context, query string, limit int) ([]domain.Document, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content_hash, title, media_type, size_bytes, storage_location, summary, created_at, imported_at
		FROM documents d
		WHERE LOWER(d.title) LIKE ? ESCAPE '\'
		   OR LOWER(d.summary) LIKE ? ESCAPE '\'
		   OR EXISTS (
				SELECT 1 FROM document_tags dt
				WHERE dt.document_id = d.id AND dt.tag_name LIKE ? ESCAPE '\'
		   )
		ORDER BY imported_at DESC, id
		LIMIT ?
	`, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("searching documents: %w", err)
	}
	defer rows.Close()

	return s.collectDocuments(ctx, rows)
}

// ListByAnyTag returns documents carrying at least one of the given
// tags, deduplicated, ordered by import time descending.
func (s *Store) ListByAnyTag(ctx context.Context, tags []string, limit int) ([]domain.Document, error) {
	if len(tags) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(tags))
	args := make([]any, 0, len(tags)+1)
	for i, tag := range tags {
		placeholders[i] = "?"
		args = append(args, domain.NormalizeTag(tag))
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT DISTINCT d.id, d.content_hash, d.title, d.media_type, d.size_bytes,
			d.storage_location, d.summary, d.created_at, d.imported_at
		FROM documents d
		JOIN document_tags dt ON dt.document_id = d.id
		WHERE dt.tag_name IN (%s)
		ORDER BY d.imported_at DESC, d.id
		LIMIT ?
	`, strings.Join(placeholders, ", "))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents by tag: %w", err)
	}
	defer rows.Close()

	return s.collectDocuments(ctx, rows)
}

// TagNames returns the current tag vocabulary, sorted.
func (s *Store) TagNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM tags ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	var names []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	return names, nil
}

// documentTags returns the sorted tag names of one document.
func (s *Store) documentTags(ctx context.Context, documentID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tag_name FROM document_tags
		WHERE document_id = ?
		ORDER BY tag_name
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying document tags: %w", err)
	}
	defer rows.Close()

	var tags []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scanning document tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating document tags: %w", err)
	}

	return tags, nil
}

// collectDocuments drains rows and attaches each document's tags.
func (s *Store) collectDocuments(ctx context.Context, rows *sql.Rows) ([]domain.Document, error) {
	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	for i := range docs {
		tags, err := s.documentTags(ctx, docs[i].ID)
		if err != nil {
			return nil, err
		}
		docs[i].Tags = tags
	}

	return docs, nil
}

// pruneEmptyTags removes tags with no remaining memberships.
func pruneEmptyTags(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		DELETE FROM tags
		WHERE name NOT IN (SELECT DISTINCT tag_name FROM document_tags)
	`)
	if err != nil {
		return fmt.Errorf("pruning empty tags: %w", err)
	}
	return nil
}

// escapeLike escapes LIKE wildcards so the query stays a literal
// substring match.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}

// scanDocument scans a single document row.
func scanDocument(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	if err := row.Scan(&doc.ID, &doc.ContentHash, &doc.Title, &doc.MediaType,
		&doc.SizeBytes, &doc.StorageLocation, &doc.Summary,
		&doc.CreatedAt, &doc.ImportedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return &doc, nil
}

// scanDocumentRows scans a document from *sql.Rows.
func scanDocumentRows(rows *sql.Rows) (*domain.Document, error) {
	var doc domain.Document
	if err := rows.Scan(&doc.ID, &doc.ContentHash, &doc.Title, &doc.MediaType,
		&doc.SizeBytes, &doc.StorageLocation, &doc.Summary,
		&doc.CreatedAt, &doc.ImportedAt); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return &doc, nil
}
