package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when no document exists for a fileId
	ErrNotFound = errors.New("invoice not found")

	// ErrConflict is returned when creating a document whose fileId already exists
	ErrConflict = errors.New("invoice with this fileId already exists")

	// ErrValidation is matched by every *ValidationError
	ErrValidation = errors.New("validation failed")

	// ErrExtractionFailed is returned when the extraction backend could not
	// produce a complete document
	ErrExtractionFailed = errors.New("extraction failed")
)

// FieldError describes a single invalid field
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects field-level validation failures
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError creates a validation error for a single field
func NewValidationError(field, message string) *ValidationError {
	verr := &ValidationError{}
	verr.Add(field, message)
	return verr
}

// Add records a failure for field
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns nil when no field failed, so callers can return it directly
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Error returns a string representation of the error
func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return e.Fields[0].Message
	}
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	sort.Strings(names)
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(names, ", "))
}

// Is makes errors.Is(err, ErrValidation) true for any *ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
