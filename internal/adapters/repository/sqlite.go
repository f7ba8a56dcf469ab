package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // driver: sqlite
)

// DefaultSQLiteDSN is used when no DSN is configured.
const DefaultSQLiteDSN = "file:apiscore.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS faculty_documents (
  user_id    TEXT PRIMARY KEY,
  id         TEXT NOT NULL UNIQUE,
  sections   TEXT NOT NULL DEFAULT '{}',
  created_at INTEGER NOT NULL,
  updated_at INTEGER NOT NULL
);
`

// SQLiteStore keeps one JSON document per user in a SQLite table. The
// read-merge-write of UpsertFields runs in a single transaction over a
// single connection.
type SQLiteStore struct {
	db   *sql.DB
	opts options
}

// OpenSQLite opens dsn, tunes the pool for a single writer and ensures the
// schema exists.
func OpenSQLite(ctx context.Context, dsn string, opts ...Option) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = DefaultSQLiteDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQLite); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: schema: %w", err)
	}
	return &SQLiteStore{db: db, opts: newOptions(opts)}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// UpsertFields implements Store.
func (s *SQLiteStore) UpsertFields(ctx context.Context, userID string, fields map[string]json.RawMessage) (err error) {
	defer func(start time.Time) { observe(BackendSQLite, opUpsert, start, err) }(time.Now())

	if err := validateUpsert(userID, fields); err != nil {
		return err
	}

	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		var (
			raw  string
			id   string
			sect map[string]json.RawMessage
		)
		err := tx.QueryRowContext(ctx,
			`SELECT id, sections FROM faculty_documents WHERE user_id = ?`, userID).Scan(&id, &raw)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			id = s.opts.newID()
		case err != nil:
			return fmt.Errorf("sqlite: select: %w", err)
		default:
			if err := json.Unmarshal([]byte(raw), &sect); err != nil {
				return fmt.Errorf("sqlite: decode sections: %w", err)
			}
		}

		merged, err := json.Marshal(merge(sect, fields))
		if err != nil {
			return fmt.Errorf("sqlite: encode sections: %w", err)
		}
		now := s.opts.now().UnixNano()
		_, err = tx.ExecContext(ctx, `
INSERT INTO faculty_documents (user_id, id, sections, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET sections = excluded.sections, updated_at = excluded.updated_at`,
			userID, id, string(merged), now, now)
		if err != nil {
			return fmt.Errorf("sqlite: upsert: %w", err)
		}
		return nil
	})
}

// ReadOne implements Store.
func (s *SQLiteStore) ReadOne(ctx context.Context, userID string, projection ...string) (_ Document, err error) {
	defer func(start time.Time) { observe(BackendSQLite, opRead, start, err) }(time.Now())

	var (
		doc                  = Document{UserID: userID}
		raw                  string
		createdAt, updatedAt int64
	)
	err = s.db.QueryRowContext(ctx,
		`SELECT id, sections, created_at, updated_at FROM faculty_documents WHERE user_id = ?`, userID).
		Scan(&doc.ID, &raw, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("sqlite: select: %w", err)
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &sections); err != nil {
		return Document{}, fmt.Errorf("sqlite: decode sections: %w", err)
	}
	doc.Sections = project(sections, projection)
	doc.CreatedAt = time.Unix(0, createdAt).UTC()
	doc.UpdatedAt = time.Unix(0, updatedAt).UTC()
	return doc, nil
}

// withTx runs fn in a transaction, committing when it returns nil.
func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if e := tx.Commit(); e != nil {
			err = fmt.Errorf("sqlite: commit: %w", e)
		}
	}()
	return fn(tx)
}
