package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultPostgresDSN is used when no DSN is configured.
const DefaultPostgresDSN = "postgres://localhost:5432/apiscore?sslmode=disable"

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS faculty_documents (
  user_id    TEXT PRIMARY KEY,
  id         TEXT NOT NULL UNIQUE,
  sections   JSONB NOT NULL DEFAULT '{}'::jsonb,
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL
)`

// PostgresStore keeps one JSONB document per user. UpsertFields is a single
// INSERT ... ON CONFLICT statement that merges top-level keys with ||, so
// each write is atomic without a client-side read.
type PostgresStore struct {
	pool *pgxpool.Pool
	opts options
}

// OpenPostgres connects to dsn and ensures the schema exists.
func OpenPostgres(ctx context.Context, dsn string, opts ...Option) (*PostgresStore, error) {
	if dsn == "" {
		dsn = DefaultPostgresDSN
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	if _, err := pool.Exec(ctx, schemaPostgres); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: schema: %w", err)
	}
	return &PostgresStore{pool: pool, opts: newOptions(opts)}, nil
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// UpsertFields implements Store.
func (s *PostgresStore) UpsertFields(ctx context.Context, userID string, fields map[string]json.RawMessage) (err error) {
	defer func(start time.Time) { observe(BackendPostgres, opUpsert, start, err) }(time.Now())

	if err := validateUpsert(userID, fields); err != nil {
		return err
	}
	patch, err := json.Marshal(merge(nil, fields))
	if err != nil {
		return fmt.Errorf("postgres: encode sections: %w", err)
	}

	now := s.opts.now()
	_, err = s.pool.Exec(ctx, `
INSERT INTO faculty_documents (user_id, id, sections, created_at, updated_at)
VALUES ($1, $2, $3::jsonb, $4, $4)
ON CONFLICT (user_id) DO UPDATE
SET sections = faculty_documents.sections || EXCLUDED.sections,
    updated_at = EXCLUDED.updated_at`,
		userID, s.opts.newID(), string(patch), now)
	if err != nil {
		return fmt.Errorf("postgres: upsert: %w", err)
	}
	return nil
}

// ReadOne implements Store.
func (s *PostgresStore) ReadOne(ctx context.Context, userID string, projection ...string) (_ Document, err error) {
	defer func(start time.Time) { observe(BackendPostgres, opRead, start, err) }(time.Now())

	doc := Document{UserID: userID}
	var raw []byte
	err = s.pool.QueryRow(ctx,
		`SELECT id, sections, created_at, updated_at FROM faculty_documents WHERE user_id = $1`, userID).
		Scan(&doc.ID, &raw, &doc.CreatedAt, &doc.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("postgres: select: %w", err)
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		return Document{}, fmt.Errorf("postgres: decode sections: %w", err)
	}
	doc.Sections = project(sections, projection)
	doc.CreatedAt = doc.CreatedAt.UTC()
	doc.UpdatedAt = doc.UpdatedAt.UTC()
	return doc, nil
}
