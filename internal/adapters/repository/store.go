// Package repository stores faculty submission documents.
//
// A document is keyed by user id and maps section keys to stored section
// records. Writes are partial: UpsertFields merges the given section keys
// into the document and leaves every other key untouched.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/tashifkhan/faculty-appraisal-system/internal/domain/model"
	"github.com/tashifkhan/faculty-appraisal-system/pkg/metrics"
)

// Document is the stored shape of one faculty member's submissions.
type Document = model.Document

// Store provides read/write access to submission documents.
type Store interface {
	// UpsertFields merges fields into the user's document, creating it if
	// absent. It refreshes updated_at and never removes other fields.
	UpsertFields(ctx context.Context, userID string, fields map[string]json.RawMessage) error

	// ReadOne returns the user's document. When projection is given only
	// those section keys are returned. Returns ErrNotFound if the user has
	// no document.
	ReadOne(ctx context.Context, userID string, projection ...string) (Document, error)
}

// Backend labels used in metrics and logs.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Operation labels used in metrics.
const (
	opUpsert = "upsert"
	opRead   = "read"
)

// observe records the latency and failure of one storage call.
func observe(backend, op string, start time.Time, err error) {
	metrics.RecordStorageLatency(backend, op, float64(time.Since(start).Microseconds())/1000)
	if err != nil && !errors.Is(err, ErrNotFound) {
		metrics.RecordStorageError(backend, op)
	}
}

// project keeps only the requested keys. An empty projection keeps all.
func project(sections map[string]json.RawMessage, keys []string) map[string]json.RawMessage {
	if len(keys) == 0 {
		return sections
	}
	out := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		if v, ok := sections[k]; ok {
			out[k] = v
		}
	}
	return out
}

// merge copies fields into dst, replacing existing keys.
func merge(dst, fields map[string]json.RawMessage) map[string]json.RawMessage {
	if dst == nil {
		dst = make(map[string]json.RawMessage, len(fields))
	}
	for k, v := range fields {
		dst[k] = append(json.RawMessage(nil), v...)
	}
	return dst
}
