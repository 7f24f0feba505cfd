package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/comedorlabs/comedor-server/internal/model"
)

var _ model.EntryStore = (*EntryStore)(nil)

// EntryStore is the append-only entry ledger view of a Store.
type EntryStore struct {
	core *Store
}

func (s *EntryStore) Create(_ context.Context, entry model.AccessEntry) (model.AccessEntry, error) {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	key := entryKey{userID: entry.UserID, shiftID: entry.ShiftID, date: entry.Date}
	if _, ok := s.core.byKey[key]; ok {
		return model.AccessEntry{}, model.ErrDuplicateEntry
	}

	s.core.entries = append(s.core.entries, entry)
	s.core.byKey[key] = len(s.core.entries) - 1
	return entry, nil
}

func (s *EntryStore) GetByKey(_ context.Context, userID string, shiftID uuid.UUID, date model.Date) (model.AccessEntry, error) {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()

	idx, ok := s.core.byKey[entryKey{userID: userID, shiftID: shiftID, date: date}]
	if !ok {
		return model.AccessEntry{}, model.ErrNotFound
	}
	return s.core.entries[idx], nil
}

// ListByDate returns the date's entries in insertion order.
func (s *EntryStore) ListByDate(_ context.Context, date model.Date) ([]model.AccessEntry, error) {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()

	out := make([]model.AccessEntry, 0)
	for _, e := range s.core.entries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *EntryStore) ExistsForShift(_ context.Context, shiftID uuid.UUID) (bool, error) {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()

	return s.core.shiftReferenced(shiftID), nil
}
