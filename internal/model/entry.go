package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EntryStore defines persistence operations for access entries. The store is
// append-only: entries are never mutated once created.
type EntryStore interface {
	// Create persists an entry. It returns ErrDuplicateEntry if an entry
	// with the same (user, shift, date) key already exists; under concurrent
	// submission of the same key exactly one Create succeeds.
	Create(ctx context.Context, entry AccessEntry) (AccessEntry, error)
	// GetByKey returns the entry with the exact composite key, or ErrNotFound.
	GetByKey(ctx context.Context, userID string, shiftID uuid.UUID, date Date) (AccessEntry, error)
	// ListByDate returns every entry recorded on the given date.
	ListByDate(ctx context.Context, date Date) ([]AccessEntry, error)
	// ExistsForShift reports whether any entry references the shift.
	ExistsForShift(ctx context.Context, shiftID uuid.UUID) (bool, error)
}

// AccessEntry is one accepted scan tying a user to a shift on a calendar
// date. At most one entry exists per (UserID, ShiftID, Date).
type AccessEntry struct {
	ID         uuid.UUID `json:"id"`
	UserID     string    `json:"user_id"`
	ShiftID    uuid.UUID `json:"shift_id"`
	Date       Date      `json:"date"`
	Time       TimeOfDay `json:"time"`
	RecordedAt time.Time `json:"recorded_at"`
}
