package repository

import "errors"

var (
	// ErrNotFound is returned by lookups and mutations that reference an id
	// that does not exist in the store.
	ErrNotFound = errors.New("task not found")

	// ErrDuplicateKey is returned on an id collision during insert. With
	// uuid-generated ids this indicates an internal fault, not user input.
	ErrDuplicateKey = errors.New("duplicate task id")
)
