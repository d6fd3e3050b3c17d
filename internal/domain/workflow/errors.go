package workflow

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMaterialNotFound = errors.New("material not found")
	ErrForbidden        = errors.New("actor is not authorized for this material")
	ErrVersionConflict  = errors.New("attachment version conflict")
	ErrUnknownStatus    = errors.New("unknown status")
	ErrUnknownRole      = errors.New("unknown role")
	ErrUnknownPolicy    = errors.New("unknown transition policy")
)

// FieldError is one validation violation on a named input field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// ValidationError carries every violation found on one input. Violations are
// collected, not fail-fast, so a batch caller can report them per row.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.String())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Fields: []FieldError{{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}}}
}
