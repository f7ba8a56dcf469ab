package service

import (
	"errors"
	"fmt"

	"github.com/tashifkhan/faculty-appraisal-system/internal/domain/model"
	"github.com/tashifkhan/faculty-appraisal-system/internal/domain/scoring"
)

// Input errors. Each one satisfies errors.Is(err, ErrInvalidInput).
var (
	ErrInvalidInput    = scoring.ErrInvalidInput
	ErrMissingUserID   = fmt.Errorf("%w: missing user_id", ErrInvalidInput)
	ErrMissingSemester = fmt.Errorf("%w: section 12.1 requires a semester", ErrInvalidInput)
)

// IsInputError reports whether err was caused by the caller's input rather
// than by storage: invalid values, malformed dates or unknown sections.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, scoring.ErrMalformedDate) ||
		errors.Is(err, model.ErrUnknownSection)
}
