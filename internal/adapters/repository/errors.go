package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds for storage errors.
var (
	ErrNotFound           = errors.New("document not found")
	ErrInvalidUserID      = errors.New("invalid user id")
	ErrInvalidField       = errors.New("invalid field")
	ErrUnsupportedBackend = errors.New("unsupported storage backend")
)

// validateUpsert rejects writes the document shape cannot hold.
func validateUpsert(userID string, fields map[string]json.RawMessage) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidUserID
	}
	for k, v := range fields {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("%w: empty key", ErrInvalidField)
		}
		if !json.Valid(v) {
			return fmt.Errorf("%w: %q is not valid JSON", ErrInvalidField, k)
		}
	}
	return nil
}
