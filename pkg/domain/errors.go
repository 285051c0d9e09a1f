package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when a trigram id, branch, or moving line falls outside its range.
var ErrInvalidInput = errors.New("invalid input")

// ErrReadingNotFound is returned when a reading ID cannot be found in the journal.
var ErrReadingNotFound = errors.New("reading not found")

// ErrUnresolvedRelation signals that the generation and domination tables no longer
// cover every element pair. It cannot occur with the built-in tables.
var ErrUnresolvedRelation = errors.New("element relation unresolved")

// InputError describes a single rejected input value.
// It unwraps to ErrInvalidInput.
type InputError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InputError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field string, value any, reason string) error {
	return &InputError{Field: field, Value: value, Reason: reason}
}
