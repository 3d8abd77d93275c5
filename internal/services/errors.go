package services

import "errors"

var (
	// ErrNotFound is returned when a referenced term or definition is absent.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned when the requesting author does not own the
	// definition, or the definition does not belong to the given term.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrConflict is returned when a term with the same name already exists.
	ErrConflict = errors.New("conflict")

	// ErrValidation is returned when a field is missing or out of bounds.
	ErrValidation = errors.New("validation failed")
)
