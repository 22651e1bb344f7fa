package forms

import (
	"errors"
	"fmt"

	"Bizonii-Backend/src/models"
)

// SchemaErrorReason names the rule a form definition broke.
type SchemaErrorReason string

const (
	NoFieldOptionsProvided  SchemaErrorReason = "NO_FIELD_OPTIONS_PROVIDED"
	NoFieldKeywordsProvided SchemaErrorReason = "NO_FIELD_KEYWORDS_PROVIDED"
	UnspecifiedField        SchemaErrorReason = "UNSPECIFIED_FIELD"
)

var (
	// ErrSchema matches every *SchemaError via errors.Is.
	ErrSchema = errors.New("invalid form definition")

	ErrInvalidRetentionPeriod = fmt.Errorf("'data_retention_period' must be more than %d and less than %d days", MinRetentionDays, MaxRetentionDays)
)

// SchemaError reports the first inconsistency found in a form definition.
type SchemaError struct {
	Reason      SchemaErrorReason
	Placeholder string
	Kind        models.FieldKind
}

func (e *SchemaError) Error() string {
	switch e.Reason {
	case NoFieldOptionsProvided:
		return fmt.Sprintf("no options provided for '%s' field '%s'", e.Kind, e.Placeholder)
	case NoFieldKeywordsProvided:
		return fmt.Sprintf("no keywords provided for '%s' field '%s'", e.Kind, e.Placeholder)
	case UnspecifiedField:
		return fmt.Sprintf("unspecified field '%s' found in text section", e.Placeholder)
	default:
		return ErrSchema.Error()
	}
}

func (e *SchemaError) Unwrap() error { return ErrSchema }
