package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/comedorlabs/comedor-server/internal/model"
)

var _ model.ShiftStore = (*ShiftRepository)(nil)

type ShiftRepository struct {
	db *Connection
}

func NewShiftRepository(db *Connection) *ShiftRepository {
	return &ShiftRepository{
		db: db,
	}
}

func (r *ShiftRepository) ListActive(ctx context.Context) ([]model.ShiftDefinition, error) {
	query := `SELECT id, label, start_minute, end_minute, active, created_at, updated_at
			  FROM shifts WHERE active ORDER BY start_minute, label`

	return r.list(ctx, query)
}

func (r *ShiftRepository) List(ctx context.Context) ([]model.ShiftDefinition, error) {
	query := `SELECT id, label, start_minute, end_minute, active, created_at, updated_at
			  FROM shifts ORDER BY start_minute, label`

	return r.list(ctx, query)
}

func (r *ShiftRepository) list(ctx context.Context, query string) ([]model.ShiftDefinition, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, storeErr("failed to list shifts", err)
	}
	defer rows.Close()

	shifts := make([]model.ShiftDefinition, 0)
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, storeErr("failed to scan shift", err)
		}
		shifts = append(shifts, shift)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("failed to list shifts", err)
	}

	return shifts, nil
}

func (r *ShiftRepository) GetByID(ctx context.Context, id uuid.UUID) (model.ShiftDefinition, error) {
	query := `SELECT id, label, start_minute, end_minute, active, created_at, updated_at
			  FROM shifts WHERE id = $1`

	shift, err := scanShift(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ShiftDefinition{}, model.ErrNotFound
		}
		return model.ShiftDefinition{}, storeErr("failed to get shift by id", err)
	}

	return shift, nil
}

func (r *ShiftRepository) Create(ctx context.Context, shift model.ShiftDefinition) (model.ShiftDefinition, error) {
	query := `INSERT INTO shifts (id, label, start_minute, end_minute, active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		shift.ID, shift.Label, int(shift.Start), int(shift.End),
		shift.Active, shift.CreatedAt, shift.UpdatedAt,
	)
	if err != nil {
		return model.ShiftDefinition{}, storeErr("failed to create shift", err)
	}

	return shift, nil
}

func (r *ShiftRepository) Update(ctx context.Context, shift model.ShiftDefinition) (model.ShiftDefinition, error) {
	query := `UPDATE shifts
			  SET label = $2, start_minute = $3, end_minute = $4, active = $5, updated_at = $6
			  WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query,
		shift.ID, shift.Label, int(shift.Start), int(shift.End),
		shift.Active, shift.UpdatedAt,
	)
	if err != nil {
		return model.ShiftDefinition{}, storeErr("failed to update shift", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ShiftDefinition{}, model.ErrNotFound
	}

	return shift, nil
}

// Delete removes the shift only while no access entry references it. The
// conditional delete is a single statement, so it cannot race with an
// in-flight entry insert: whichever commits first wins, and a delete losing
// to an insert reports model.ErrShiftHasEntries.
func (r *ShiftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM shifts
			  WHERE id = $1
			  AND NOT EXISTS (SELECT 1 FROM access_entries WHERE shift_id = $1)`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return storeErr("failed to delete shift", err)
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM shifts WHERE id = $1)`, id).Scan(&exists); err != nil {
		return storeErr("failed to check shift existence", err)
	}
	if !exists {
		return model.ErrNotFound
	}
	return model.ErrShiftHasEntries
}

func scanShift(row pgx.Row) (model.ShiftDefinition, error) {
	var (
		shift        model.ShiftDefinition
		startM, endM int
	)
	err := row.Scan(&shift.ID, &shift.Label, &startM, &endM, &shift.Active, &shift.CreatedAt, &shift.UpdatedAt)
	if err != nil {
		return model.ShiftDefinition{}, err
	}
	shift.Start = model.TimeOfDay(startM)
	shift.End = model.TimeOfDay(endM)
	return shift, nil
}
