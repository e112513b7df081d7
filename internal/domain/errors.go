package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownReport    = errors.New("unknown report")
	ErrUnknownHandler   = errors.New("report handler not registered")
	ErrNotFound         = errors.New("resource not found")
	ErrMissingReference = errors.New("missing reference")
)

type ValidationKind string

const (
	ValidationMissingField     ValidationKind = "missing_field"
	ValidationInvalidRange     ValidationKind = "invalid_range"
	ValidationInvalidFormat    ValidationKind = "invalid_format"
	ValidationUnknownReference ValidationKind = "unknown_reference"
)

// ValidationError reports caller-supplied input that fails a schema.
// Field always names the offending parameter.
type ValidationError struct {
	Kind    ValidationKind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewMissingField reports that field was absent or blank.
func NewMissingField(field string) *ValidationError {
	return &ValidationError{Kind: ValidationMissingField, Field: field, Message: "is required"}
}

// NewInvalidRange reports that field breaks an ordering constraint.
func NewInvalidRange(field, msg string) *ValidationError {
	return &ValidationError{Kind: ValidationInvalidRange, Field: field, Message: msg}
}

// IsValidationKind reports whether err is a ValidationError of the given kind.
func IsValidationKind(err error, kind ValidationKind) bool {
	var ve *ValidationError
	return errors.As(err, &ve) && ve.Kind == kind
}

// RetrievalError wraps a transport failure while fetching a stored artifact.
type RetrievalError struct {
	Reference string
	Cause     error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieve %s: %v", e.Reference, e.Cause)
}

func (e *RetrievalError) Unwrap() error {
	return e.Cause
}
