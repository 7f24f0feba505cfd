package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/comedorlabs/comedor-server/internal/model"
)

var _ model.ShiftStore = (*ShiftStore)(nil)

// ShiftStore is the shift definition view of a Store.
type ShiftStore struct {
	core *Store
}

func (s *ShiftStore) ListActive(_ context.Context) ([]model.ShiftDefinition, error) {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()

	return s.list(true), nil
}

func (s *ShiftStore) List(_ context.Context) ([]model.ShiftDefinition, error) {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()

	return s.list(false), nil
}

func (s *ShiftStore) list(activeOnly bool) []model.ShiftDefinition {
	out := make([]model.ShiftDefinition, 0, len(s.core.shifts))
	for _, shift := range s.core.shifts {
		if activeOnly && !shift.Active {
			continue
		}
		out = append(out, shift)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].Label < out[j].Label
	})
	return out
}

func (s *ShiftStore) GetByID(_ context.Context, id uuid.UUID) (model.ShiftDefinition, error) {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()

	shift, ok := s.core.shifts[id]
	if !ok {
		return model.ShiftDefinition{}, model.ErrNotFound
	}
	return shift, nil
}

func (s *ShiftStore) Create(_ context.Context, shift model.ShiftDefinition) (model.ShiftDefinition, error) {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	s.core.shifts[shift.ID] = shift
	return shift, nil
}

func (s *ShiftStore) Update(_ context.Context, shift model.ShiftDefinition) (model.ShiftDefinition, error) {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	if _, ok := s.core.shifts[shift.ID]; !ok {
		return model.ShiftDefinition{}, model.ErrNotFound
	}
	s.core.shifts[shift.ID] = shift
	return shift, nil
}

// Delete removes a shift unless any entry references it. The check and the
// delete run under the same lock as entry inserts, so a delete can never
// race past a committing insert.
func (s *ShiftStore) Delete(_ context.Context, id uuid.UUID) error {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()

	if _, ok := s.core.shifts[id]; !ok {
		return model.ErrNotFound
	}
	if s.core.shiftReferenced(id) {
		return model.ErrShiftHasEntries
	}
	delete(s.core.shifts, id)
	return nil
}
