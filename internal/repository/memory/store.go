package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/comedorlabs/comedor-server/internal/model"
)

type entryKey struct {
	userID  string
	shiftID uuid.UUID
	date    model.Date
}

// Store holds the in-memory tables behind the entry, shift and user views,
// intended for tests and dev environments. One mutex covers all tables, so
// the duplicate check and the shift delete-with-dependents check are
// trivially atomic with respect to entry inserts.
type Store struct {
	mu      sync.RWMutex
	entries []model.AccessEntry
	byKey   map[entryKey]int
	shifts  map[uuid.UUID]model.ShiftDefinition
	users   map[string]model.User
}

func New() *Store {
	return &Store{
		byKey:  make(map[entryKey]int),
		shifts: make(map[uuid.UUID]model.ShiftDefinition),
		users:  make(map[string]model.User),
	}
}

// Entries returns the model.EntryStore view of the store.
func (s *Store) Entries() *EntryStore { return &EntryStore{core: s} }

// Shifts returns the model.ShiftStore view of the store.
func (s *Store) Shifts() *ShiftStore { return &ShiftStore{core: s} }

// Users returns the model.UserDirectory view of the store.
func (s *Store) Users() *UserDirectory { return &UserDirectory{core: s} }

// PutUser seeds or replaces a directory row. Dev/test helper.
func (s *Store) PutUser(user model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.ID] = user
}

// PutShift seeds or replaces a shift definition. Dev/test helper.
func (s *Store) PutShift(shift model.ShiftDefinition) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shifts[shift.ID] = shift
}

func (s *Store) shiftReferenced(shiftID uuid.UUID) bool {
	for _, e := range s.entries {
		if e.ShiftID == shiftID {
			return true
		}
	}
	return false
}
