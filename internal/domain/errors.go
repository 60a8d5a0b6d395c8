package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrValidation           = errors.New("validation error")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrPayloadTooLarge      = errors.New("payload too large")

	// ErrNoWords is returned when the input text yields no letter tokens.
	// It is a validation error and is reported before any lookup starts.
	ErrNoWords = fmt.Errorf("%w: text contains no words", ErrValidation)

	// ErrEnrichmentAborted marks lookups that were cancelled because a sibling
	// lookup in the same batch failed. It is recorded on outcomes, never returned
	// as the error of the whole operation.
	ErrEnrichmentAborted = errors.New("enrichment aborted")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}
