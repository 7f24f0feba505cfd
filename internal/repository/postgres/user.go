package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/comedorlabs/comedor-server/internal/model"
)

var _ model.UserDirectory = (*UserRepository)(nil)

// UserRepository reads the employee directory table. The table is owned by
// the external user-management system; this repository never writes to it.
type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (model.User, error) {
	query := `SELECT id, name, department, external, active FROM users WHERE id = $1`

	var user model.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Department, &user.External, &user.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, storeErr("failed to get user by id", err)
	}

	return user, nil
}
