package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors translated to HTTP statuses at the handler boundary.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("you are not the author of this recipe")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ConflictError reports a uniqueness violation on a toggle relation:
// adding a row that exists or removing one that does not. Surfaced as 400.
type ConflictError struct {
	Detail string
}

func (e *ConflictError) Error() string { return e.Detail }

// ValidationError collects field-level problems with a write payload.
// Matching payloads never persist anything.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, taken := e.Fields[field]; !taken {
		e.Fields[field] = message
	}
}

func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
