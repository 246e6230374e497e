package repository

import "errors"

var (
	// ErrNotFound covers both a genuinely missing row and an ownership
	// mismatch; callers must not be able to tell them apart.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when the unique email constraint fires.
	ErrDuplicateEmail = errors.New("email already registered")
)
