package patternmem

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danielpatrickdp/unwind/go-controller/internal/classifier"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS explained_patterns (
	pattern       TEXT PRIMARY KEY,
	explained_at  TEXT NOT NULL
);
`

// #endregion schema

// #region store-struct

// SQLiteStore keeps the explained set in an explained_patterns table.
type SQLiteStore struct {
	db    *sql.DB
	owned bool
}

// OpenSQLiteStore opens a SQLite database at path and runs migrations.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	s, err := NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	s.owned = true
	return s, nil
}

// NewSQLiteStore creates the table if needed on an existing connection. The
// caller keeps ownership of db.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database if it was opened by OpenSQLiteStore.
func (s *SQLiteStore) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}

// #endregion store-struct

// #region load-save

func (s *SQLiteStore) Load(ctx context.Context) ([]classifier.Pattern, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT pattern FROM explained_patterns`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrLoadFailed, err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	return fromNames(names), nil
}

// Save replaces the table contents with explained in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, explained []classifier.Pattern) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %v", ErrSaveFailed, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM explained_patterns`); err != nil {
		return fmt.Errorf("%w: clear: %v", ErrSaveFailed, err)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, name := range toNames(explained) {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO explained_patterns (pattern, explained_at) VALUES (?, ?)`,
			name, now,
		); err != nil {
			return fmt.Errorf("%w: insert %s: %v", ErrSaveFailed, name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrSaveFailed, err)
	}
	return nil
}

// #endregion load-save
