package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrValidation is matched by every input validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrIndexOutOfRange is matched by IndexError.
	ErrIndexOutOfRange = errors.New("item index out of range")

	// ErrCollaboratorUnavailable is matched by CollaboratorError. The document
	// was already written when this is returned.
	ErrCollaboratorUnavailable = errors.New("draft composer unavailable")
)

// ValidationError reports bad or missing user input, keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	keys := e.keys()
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Messages returns the field messages ordered by field name.
func (e *ValidationError) Messages() []string {
	keys := e.keys()
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, e.Fields[k])
	}
	return out
}

func (e *ValidationError) keys() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Has reports whether the given field failed validation.
func (e *ValidationError) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

// IndexError is returned when a positional removal is out of range.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("item index %d out of range [0, %d)", e.Index, e.Len)
}

func (e *IndexError) Unwrap() []error { return []error{ErrIndexOutOfRange, ErrValidation} }

// RenderError wraps an I/O failure while producing the document.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("render: %v", e.Err)
	}
	return fmt.Sprintf("render %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// CollaboratorError wraps a failure of the draft composer.
type CollaboratorError struct {
	Composer string
	Err      error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Composer, e.Err)
}

func (e *CollaboratorError) Unwrap() []error { return []error{ErrCollaboratorUnavailable, e.Err} }
