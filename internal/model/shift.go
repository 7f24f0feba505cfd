package model

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ShiftStore defines persistence operations for shift definitions.
type ShiftStore interface {
	ListActive(ctx context.Context) ([]ShiftDefinition, error)
	List(ctx context.Context) ([]ShiftDefinition, error)
	GetByID(ctx context.Context, id uuid.UUID) (ShiftDefinition, error)
	Create(ctx context.Context, shift ShiftDefinition) (ShiftDefinition, error)
	Update(ctx context.Context, shift ShiftDefinition) (ShiftDefinition, error)
	// Delete removes a shift definition. It returns ErrShiftHasEntries if
	// any access entry references the shift, and must check and delete
	// atomically with respect to concurrent entry inserts.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ShiftDefinition is a named recurring time-of-day window during which
// entries are accepted.
type ShiftDefinition struct {
	ID        uuid.UUID `json:"id"`
	Label     string    `json:"label"`
	Start     TimeOfDay `json:"start"`
	End       TimeOfDay `json:"end"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Contains reports whether t falls inside the shift's [Start, End) window.
// A window with Start > End wraps midnight, e.g. 22:00-06:00 covers
// [22:00, 24:00) and [00:00, 06:00).
func (s ShiftDefinition) Contains(t TimeOfDay) bool {
	if s.Start > s.End {
		return t >= s.Start || t < s.End
	}
	return t >= s.Start && t < s.End
}

// ShiftCatalog is an immutable snapshot of the active shift windows.
// Resolution is a pure function of the snapshot and a time of day, so all
// decisions made against one catalog value are mutually consistent.
type ShiftCatalog struct {
	shifts  []ShiftDefinition
	version int64
}

// NewShiftCatalog builds a catalog from shift definitions. Inactive shifts
// are dropped and the rest are ordered ascending by start time, which makes
// resolution deterministic even for overlapping windows.
func NewShiftCatalog(shifts []ShiftDefinition) ShiftCatalog {
	active := make([]ShiftDefinition, 0, len(shifts))
	var version int64
	for _, s := range shifts {
		if !s.Active {
			continue
		}
		if v := s.UpdatedAt.UnixMilli(); v > version {
			version = v
		}
		active = append(active, s)
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Start < active[j].Start
	})
	return ShiftCatalog{shifts: active, version: version}
}

// Resolve returns the shift whose window contains t. When windows overlap
// the first match in ascending start order wins. The second return is false
// when no window contains t; that is a decision, not an error.
func (c ShiftCatalog) Resolve(t TimeOfDay) (ShiftDefinition, bool) {
	for _, s := range c.shifts {
		if s.Contains(t) {
			return s, true
		}
	}
	return ShiftDefinition{}, false
}

// Shifts returns a copy of the catalog's windows in resolution order.
func (c ShiftCatalog) Shifts() []ShiftDefinition {
	out := make([]ShiftDefinition, len(c.shifts))
	copy(out, c.shifts)
	return out
}

// Version identifies the snapshot, derived from the newest shift update.
func (c ShiftCatalog) Version() int64 { return c.version }

// Len reports the number of active windows in the snapshot.
func (c ShiftCatalog) Len() int { return len(c.shifts) }
