package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"nodework/internal/repository"

	_ "modernc.org/sqlite"
)

// Repository implements repository.Store using SQLite
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

var _ repository.Store = (*Repository)(nil)

// New opens (and migrates) the database at dbPath. Use ":memory:" for a
// throwaway store.
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// an in-memory database lives and dies with its connection
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	repo := &Repository{db: db, now: time.Now}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func dsn(path string) string {
	if path == ":memory:" {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		key TEXT PRIMARY KEY,
		data BLOB,
		updated_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_documents_updated ON documents(updated_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Save replaces the document stored under key
func (r *Repository) Save(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return fmt.Errorf("document key is required")
	}
	if data == nil {
		data = []byte{}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO documents (key, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, key, data, r.now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to save document %s: %w", key, err)
	}
	return nil
}

// Load returns the document under key. An empty document counts as missing.
func (r *Repository) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM documents WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document %s: %w", key, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, key)
	}
	return data, nil
}

// Delete removes the document under key. Deleting a missing key is not an
// error.
func (r *Repository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete document %s: %w", key, err)
	}
	return nil
}

// List returns every stored document, most recently updated first
func (r *Repository) List(ctx context.Context) ([]repository.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT key, coalesce(length(data), 0), updated_at
		FROM documents
		ORDER BY updated_at DESC, key
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	entries := make([]repository.Entry, 0)
	for rows.Next() {
		var (
			e       repository.Entry
			updated int64
		)
		if err := rows.Scan(&e.Key, &e.Size, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		e.UpdatedAt = time.Unix(0, updated).UTC()
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}
	return entries, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
