// Package entry provides use cases for managing lexicon entries.
// It implements business logic for creating, updating, deleting, and querying
// entries, including validation and interaction with the entry repository.
package entry

import "errors"

// Sentinel errors for entry use case operations.
var (
	// ErrEntryNotFound indicates that the requested entry was not found.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrInvalidEntryID indicates that the provided entry ID is invalid.
	// Entry IDs must be positive integers.
	ErrInvalidEntryID = errors.New("invalid entry ID")

	// ErrDuplicateEntry indicates that an entry with the same type and text
	// already exists.
	ErrDuplicateEntry = errors.New("entry with this text already exists")

	// ErrInvalidLetter indicates that a browse letter is not a single
	// character in a-z.
	ErrInvalidLetter = errors.New("letter must be a single character a-z")
)
