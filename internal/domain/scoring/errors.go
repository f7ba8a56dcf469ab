package scoring

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrInvalidInput marks a value outside a closed domain, e.g. an unknown
	// section-13 letter or an unparseable number.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMalformedDate marks an event date that is not DD-MM-YYYY.
	ErrMalformedDate = errors.New("malformed date")
)

// MalformedDateError reports which date of which entry failed to parse.
type MalformedDateError struct {
	Field string
	Value string
	Err   error
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("%s: %s %q: %v", ErrMalformedDate, e.Field, e.Value, e.Err)
}

// Is makes errors.Is(err, ErrMalformedDate) hold.
func (e *MalformedDateError) Is(target error) bool {
	return target == ErrMalformedDate
}

func (e *MalformedDateError) Unwrap() error {
	return e.Err
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...)
}
