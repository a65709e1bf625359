package usage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS recents (
	name             TEXT PRIMARY KEY,
	namespace        TEXT NOT NULL,
	last_used_unix_ms INTEGER NOT NULL,
	count            INTEGER NOT NULL CHECK (count >= 1)
);
CREATE INDEX IF NOT EXISTS idx_recents_last_used ON recents(last_used_unix_ms DESC);
`

// SQLiteStore keeps the recents list in a SQLite database. It suits setups
// where several tools share one state database.
type SQLiteStore struct {
	db        *sql.DB
	closeOnce sync.Once
	closeErr  error
}

// Compile-time check that SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if needed) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// modernc.org/sqlite uses _pragma=name(value) syntax
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load returns the stored records, most recent first.
func (s *SQLiteStore) Load(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, namespace, last_used_unix_ms, count
		FROM recents
		ORDER BY last_used_unix_ms DESC, name
		LIMIT ?
	`, MaxRecents)
	if err != nil {
		return nil, fmt.Errorf("failed to query recents: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var ms int64
		if err := rows.Scan(&r.Name, &r.Namespace, &ms, &r.Count); err != nil {
			return nil, fmt.Errorf("failed to scan recent: %w", err)
		}
		r.LastUsedAt = time.UnixMilli(ms)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recents: %w", err)
	}
	return normalize(records), nil
}

// Save replaces the table contents with records in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, records []Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after Commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM recents`); err != nil {
		return fmt.Errorf("failed to clear recents: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO recents (name, namespace, last_used_unix_ms, count)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		count := r.Count
		if count < 1 {
			count = 1
		}
		if _, err := stmt.ExecContext(ctx, r.Name, r.Namespace, r.LastUsedAt.UnixMilli(), count); err != nil {
			return fmt.Errorf("failed to insert recent %q: %w", r.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit recents: %w", err)
	}
	return nil
}

// Close closes the database. It is safe to call Close multiple times.
func (s *SQLiteStore) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.db.Close()
	})
	return s.closeErr
}
