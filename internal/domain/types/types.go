// Package types contains the request and response shapes shared by the
// HTTP API and its clients.
package types

import (
	"encoding/json"

	"github.com/tashifkhan/faculty-appraisal-system/internal/domain/model"
)

// SubmitRequest is the body of a section submission.
type SubmitRequest struct {
	UserID string `json:"user_id"`
	// Semester is required for section 12.1 and ignored otherwise.
	Semester string          `json:"semester,omitempty"`
	Data     json.RawMessage `json:"data"`
}

// ScoreResult is what an ingestion returns to the caller: the score and
// its breakdown, never the stored document.
type ScoreResult struct {
	Score     float64          `json:"score"`
	Breakdown *model.Breakdown `json:"breakdown,omitempty"`
	// Undetermined lists the indexes of entries no scoring rule matched.
	Undetermined []int `json:"undetermined,omitempty"`
}

// SubmitResponse is the body of a successful submission.
type SubmitResponse struct {
	Message string      `json:"message"`
	Result  ScoreResult `json:"result"`
}

// SectionResponse is the body of a successful section read.
type SectionResponse struct {
	Message string              `json:"message"`
	Result  model.SectionRecord `json:"result"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FormRequest submits several sections of one faculty member at once.
// Sections is keyed by section id, e.g. "11" or "14".
type FormRequest struct {
	UserID   string                     `json:"user_id"`
	Semester string                     `json:"semester,omitempty"`
	Sections map[string]json.RawMessage `json:"sections"`
}

// SectionOutcome is the result of one section of a form submission.
// Exactly one of Result and Error is set.
type SectionOutcome struct {
	Result *ScoreResult   `json:"result,omitempty"`
	Error  *ErrorResponse `json:"error,omitempty"`
}

// FormResponse is the body of a form submission.
type FormResponse struct {
	Message string                    `json:"message"`
	Results map[string]SectionOutcome `json:"results"`
}
