// Package app holds what the venue, artist and show services share: the
// error taxonomy, request validation and form decoding helpers.
package app

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"fyyur/internal/store"
)

// Kind classifies a failure so handlers can pick the right response.
type Kind int

const (
	// KindStorage covers query and connection failures and anything unclassified.
	KindStorage Kind = iota
	KindNotFound
	KindValidation
	KindConflict
	KindInvalidReference
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation_failed"
	case KindConflict:
		return "conflict"
	case KindInvalidReference:
		return "invalid_reference"
	default:
		return "storage_error"
	}
}

// ValidationError lists the submitted fields that failed validation, keyed by
// form field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// KindOf maps err onto a Kind.
func KindOf(err error) Kind {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return KindValidation
	case errors.Is(err, store.ErrNotFound):
		return KindNotFound
	case errors.Is(err, store.ErrDuplicate):
		return KindConflict
	case errors.Is(err, store.ErrInvalidReference):
		return KindInvalidReference
	default:
		return KindStorage
	}
}

// FieldErrors returns the per-field messages carried by err, if any.
func FieldErrors(err error) map[string]string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}
