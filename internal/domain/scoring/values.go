package scoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Number is a lenient JSON number. Form clients send numbers, numeric
// strings, empty strings or null; the last two read as zero.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return invalidf("number: %v", err)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return invalidf("%q is not a number", s)
		}
		*n = Number(f)
		return nil
	}
	if b[0] == 't' || b[0] == 'f' {
		var v bool
		if err := json.Unmarshal(b, &v); err != nil {
			return invalidf("number: %v", err)
		}
		if v {
			*n = 1
		} else {
			*n = 0
		}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return invalidf("number: %v", err)
	}
	*n = Number(f)
	return nil
}

// Float returns n as a float64.
func (n Number) Float() float64 { return float64(n) }

// Flag is a lenient JSON boolean. It accepts booleans, numbers and the usual
// yes/no spellings; any other non-empty string counts as set.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = false
		return nil
	}
	switch b[0] {
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(b, &v); err != nil {
			return invalidf("flag: %v", err)
		}
		*f = Flag(v)
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return invalidf("flag: %v", err)
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "", "no", "n", "false", "0", "off":
			*f = false
		default:
			*f = true
		}
	default:
		var v float64
		if err := json.Unmarshal(b, &v); err != nil {
			return invalidf("flag: %v", err)
		}
		*f = v != 0
	}
	return nil
}

// Bool returns f as a bool.
func (f Flag) Bool() bool { return bool(f) }

// Decode unmarshals a section payload into T. Structural mismatches are
// reported as ErrInvalidInput. An empty payload decodes to the zero value.
func Decode[T any](raw json.RawMessage) (T, error) {
	var v T
	if len(bytes.TrimSpace(raw)) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return v, err
		}
		return v, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return v, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
