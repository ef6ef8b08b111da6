package transcript

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS transcript_log (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id  TEXT NOT NULL,
	seq         INTEGER NOT NULL,
	speaker     TEXT NOT NULL,
	text        TEXT NOT NULL,
	note        TEXT,
	created_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transcript_session ON transcript_log(session_id, seq);
`

// #endregion schema

// SQLiteWriter appends transcripts as rows of transcript_log.
type SQLiteWriter struct {
	db    *sql.DB
	owned bool
}

// OpenSQLiteWriter opens the database at path and creates the table.
func OpenSQLiteWriter(path string) (*SQLiteWriter, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	w, err := NewSQLiteWriter(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	w.owned = true
	return w, nil
}

// NewSQLiteWriter creates the table on an existing connection.
func NewSQLiteWriter(db *sql.DB) (*SQLiteWriter, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteWriter{db: db}, nil
}

// Close closes the database if OpenSQLiteWriter opened it.
func (w *SQLiteWriter) Close() error {
	if !w.owned {
		return nil
	}
	return w.db.Close()
}

// #region write

// Write inserts every entry in one transaction. The returned location is
// the session id.
func (w *SQLiteWriter) Write(ctx context.Context, sessionID string, entries []Entry) (string, error) {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%w: begin tx: %v", ErrWriteFailed, err)
	}
	defer tx.Rollback()

	for i, e := range entries {
		at := e.At
		if at.IsZero() {
			at = time.Now().UTC()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO transcript_log (session_id, seq, speaker, text, note, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			sessionID, i, e.Speaker, e.Text, nullIfEmpty(e.Note), at.Format(time.RFC3339Nano),
		)
		if err != nil {
			return "", fmt.Errorf("%w: insert: %v", ErrWriteFailed, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("%w: commit: %v", ErrWriteFailed, err)
	}
	return sessionID, nil
}

// Read returns the entries stored for sessionID in sequence order.
func (w *SQLiteWriter) Read(ctx context.Context, sessionID string) ([]Entry, error) {
	rows, err := w.db.QueryContext(ctx,
		`SELECT speaker, text, note, created_at FROM transcript_log WHERE session_id = ? ORDER BY seq`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var note sql.NullString
		var createdAt string
		if err := rows.Scan(&e.Speaker, &e.Text, &note, &createdAt); err != nil {
			return nil, fmt.Errorf("scan transcript: %w", err)
		}
		e.Note = note.String
		e.At, _ = time.Parse(time.RFC3339Nano, createdAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

// #endregion write

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
