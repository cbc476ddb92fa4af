// Package models defines the records exchanged with the two backend services
// and the operator's form inputs.
//
// Every record validates its own shape. The API client runs Validate on
// decoded payloads, so downstream view state is always well formed.
package models

import (
	"errors"
	"fmt"
)

// ValidationError reports one offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func required(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}

func positiveID(field string, id int64) error {
	if id <= 0 {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must be a positive id, got %d", id)}
	}
	return nil
}

// Validator is implemented by every record and form.
type Validator interface {
	Validate() error
}

// ValidateAll validates each element, prefixing the field with its index.
func ValidateAll[T Validator](items []T) error {
	for i, it := range items {
		if err := it.Validate(); err != nil {
			return nest(fmt.Sprintf("[%d].", i), err)
		}
	}
	return nil
}

// nest prefixes the field of a ValidationError; other errors are wrapped.
func nest(prefix string, err error) error {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return &ValidationError{Field: prefix + ve.Field, Reason: ve.Reason}
	}
	return fmt.Errorf("%s: %w", prefix, err)
}
