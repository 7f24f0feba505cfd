package memory

import (
	"context"

	"github.com/comedorlabs/comedor-server/internal/model"
)

var _ model.UserDirectory = (*UserDirectory)(nil)

// UserDirectory is the read-only user view of a Store.
type UserDirectory struct {
	core *Store
}

func (s *UserDirectory) GetByID(_ context.Context, id string) (model.User, error) {
	s.core.mu.RLock()
	defer s.core.mu.RUnlock()

	user, ok := s.core.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}
