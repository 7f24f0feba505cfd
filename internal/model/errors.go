package model

import "errors"

var (
	// ErrNotFound is returned when a user, shift or entry lookup matches nothing.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEntry is returned when an entry already exists for the
	// same user, shift and date.
	ErrDuplicateEntry = errors.New("entry already registered")
	// ErrShiftHasEntries blocks deletion of a shift that is referenced by
	// at least one access entry.
	ErrShiftHasEntries = errors.New("shift has dependent entries")
	// ErrStoreUnavailable signals a transient persistence failure. It is the
	// only error kind callers may retry.
	ErrStoreUnavailable = errors.New("store unavailable")
)
