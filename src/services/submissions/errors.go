package submissions

import (
	"errors"
	"strings"
)

// ErrMissingRequiredFields is matched by every *MissingFieldsError.
var ErrMissingRequiredFields = errors.New("missing required fields")

// MissingFieldsError lists every mandatory placeholder left empty, in schema order.
type MissingFieldsError struct {
	Placeholders []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Placeholders, ", ")
}

func (e *MissingFieldsError) Unwrap() error { return ErrMissingRequiredFields }
