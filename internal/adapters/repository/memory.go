package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// MemoryStore keeps documents in process memory. Each call holds the lock
// for its whole read-merge-write, so a section write is atomic.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
	opts options
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]*Document),
		opts: newOptions(opts),
	}
}

// UpsertFields implements Store.
func (s *MemoryStore) UpsertFields(ctx context.Context, userID string, fields map[string]json.RawMessage) (err error) {
	defer func(start time.Time) { observe(BackendMemory, opUpsert, start, err) }(time.Now())

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateUpsert(userID, fields); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.opts.now()
	doc, ok := s.docs[userID]
	if !ok {
		doc = &Document{
			ID:        s.opts.newID(),
			UserID:    userID,
			CreatedAt: now,
		}
		s.docs[userID] = doc
	}
	doc.Sections = merge(doc.Sections, fields)
	doc.UpdatedAt = now
	return nil
}

// ReadOne implements Store.
func (s *MemoryStore) ReadOne(ctx context.Context, userID string, projection ...string) (_ Document, err error) {
	defer func(start time.Time) { observe(BackendMemory, opRead, start, err) }(time.Now())

	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[userID]
	if !ok {
		return Document{}, ErrNotFound
	}
	out := *doc
	out.Sections = merge(nil, project(doc.Sections, projection))
	return out, nil
}

// Count returns the number of stored documents.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
