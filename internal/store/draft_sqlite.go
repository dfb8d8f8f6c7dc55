package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"liendesk/internal/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS drafts (
  key        TEXT PRIMARY KEY,
  snapshot   BLOB NOT NULL,
  updated_at TEXT NOT NULL
);`

// SQLiteDraftStore keeps the snapshot in a local SQLite database.
type SQLiteDraftStore struct {
	db *sql.DB
}

// OpenSQLiteDraftStore opens (creating if needed) the database at path.
func OpenSQLiteDraftStore(ctx context.Context, path string) (*SQLiteDraftStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate draft db: %w", err)
	}
	return &SQLiteDraftStore{db: db}, nil
}

func (s *SQLiteDraftStore) SaveDraft(ctx context.Context, snap domain.Snapshot) error {
	b, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO drafts (key, snapshot, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET snapshot = excluded.snapshot, updated_at = excluded.updated_at`,
		domain.DraftKey, b, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *SQLiteDraftStore) LoadDraft(ctx context.Context) (domain.Snapshot, bool, error) {
	var b []byte
	err := s.db.QueryRowContext(ctx, `SELECT snapshot FROM drafts WHERE key = ?`, domain.DraftKey).Scan(&b)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Snapshot{}, false, nil
	}
	if err != nil {
		return domain.Snapshot{}, false, err
	}
	snap, err := decodeSnapshot(b)
	if err != nil {
		return domain.Snapshot{}, false, err
	}
	return snap, true, nil
}

func (s *SQLiteDraftStore) ClearDraft(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE key = ?`, domain.DraftKey)
	return err
}

// Close releases the database handle.
func (s *SQLiteDraftStore) Close() error { return s.db.Close() }
