package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors used across all layers.
var (
	ErrValidation          = errors.New("validation error")
	ErrUnsupportedWordType = errors.New("unsupported word type")
	ErrInvalidPriority     = errors.New("invalid priority")
	ErrWordNotFound        = errors.New("word not found")
	ErrImportInvariant     = errors.New("import invariant violation")
	ErrCompileFailed       = errors.New("dictionary compile failed")
	ErrStorage             = errors.New("storage error")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
	// Err optionally carries the sentinel behind the message.
	Err error
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

// Unwrap exposes ErrValidation plus every sentinel attached to a field.
func (e *ValidationError) Unwrap() []error {
	errs := []error{ErrValidation}
	for _, fe := range e.Errors {
		if fe.Err != nil {
			errs = append(errs, fe.Err)
		}
	}
	return errs
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// WordError ties a failure to the identifier of the word that caused it.
type WordError struct {
	ID  uuid.UUID
	Err error
}

func (e *WordError) Error() string {
	return fmt.Sprintf("word %s: %v", e.ID, e.Err)
}

func (e *WordError) Unwrap() error { return e.Err }

// NotFound reports an identifier that does not name a stored word.
// Malformed identifiers are reported the same way.
func NotFound(id string) error {
	return fmt.Errorf("%w: %s", ErrWordNotFound, id)
}
