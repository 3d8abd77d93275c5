package store

import "errors"

var (
	// ErrDuplicateTerm is returned when a term with the same name already
	// exists; the primary-key constraint is the only uniqueness check.
	ErrDuplicateTerm = errors.New("term already exists")

	// ErrRecordNotFound wraps GORM's not found error for consistency
	ErrRecordNotFound = errors.New("record not found")
)
