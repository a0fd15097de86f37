package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrValidation          = errors.New("validation error")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrClientNotOnboarded  = errors.New("client not onboarded")
	ErrMissingDocument     = errors.New("missing document")
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrPersistenceFailed   = errors.New("persistence failed")
	ErrConstraintViolation = errors.New("constraint violation")
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
	fields := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		fields = append(fields, fe.Field)
	}
	return fmt.Sprintf("validation: %d errors (%s)", len(e.Errors), strings.Join(fields, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

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

// MissingDocumentError reports the first required document that is absent
// or empty in a submission.
type MissingDocumentError struct {
	Name DocumentKind
}

func (e *MissingDocumentError) Error() string {
	return fmt.Sprintf("missing required file: %s", e.Name)
}

func (e *MissingDocumentError) Unwrap() error { return ErrMissingDocument }

// UploadError reports the document whose upload failed. Uploaded holds the
// references stored before the failure; they are left in the store.
type UploadError struct {
	Document DocumentKind
	Uploaded map[DocumentKind]string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s: %v", e.Document, e.Err)
}

// Unwrap exposes both ErrStoreUnavailable and the underlying cause.
func (e *UploadError) Unwrap() []error {
	return []error{ErrStoreUnavailable, e.Err}
}

// PersistenceError reports a failed funding request insert after all
// documents were uploaded. Orphaned holds the uploaded references.
type PersistenceError struct {
	Orphaned map[DocumentKind]string
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist funding request: %v", e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistenceFailed, e.Err}
}
