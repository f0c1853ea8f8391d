// Package services holds the catalog policy layer: validation, slug
// derivation, media lifecycle, and repository orchestration.
package services

import (
	"sort"
	"strings"
)

// ValidationError carries field-level messages back to the form.
// No mutation has happened when one is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+": "+msg)
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a single-field ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// FieldErrors wraps a validate.Struct result into a ValidationError, or nil
// when the map is empty.
func FieldErrors(fields map[string]string) *ValidationError {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
