package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/comedorlabs/comedor-server/internal/model"
)

var _ model.EntryStore = (*EntryRepository)(nil)

type EntryRepository struct {
	db *Connection
}

func NewEntryRepository(db *Connection) *EntryRepository {
	return &EntryRepository{
		db: db,
	}
}

// Create inserts the entry. The unique constraint on
// (user_id, shift_id, entry_date) is the duplicate guard's atomicity point:
// of two concurrent inserts for the same key exactly one commits, the other
// fails with model.ErrDuplicateEntry.
func (r *EntryRepository) Create(ctx context.Context, entry model.AccessEntry) (model.AccessEntry, error) {
	query := `INSERT INTO access_entries (id, user_id, shift_id, entry_date, entry_minute, recorded_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		entry.ID, entry.UserID, entry.ShiftID,
		entry.Date.Time(), int(entry.Time), entry.RecordedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.AccessEntry{}, model.ErrDuplicateEntry
		}
		return model.AccessEntry{}, storeErr("failed to create access entry", err)
	}

	return entry, nil
}

func (r *EntryRepository) GetByKey(ctx context.Context, userID string, shiftID uuid.UUID, date model.Date) (model.AccessEntry, error) {
	query := `SELECT id, user_id, shift_id, entry_date, entry_minute, recorded_at
			  FROM access_entries
			  WHERE user_id = $1 AND shift_id = $2 AND entry_date = $3`

	entry, err := scanEntry(r.db.QueryRow(ctx, query, userID, shiftID, date.Time()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AccessEntry{}, model.ErrNotFound
		}
		return model.AccessEntry{}, storeErr("failed to get access entry by key", err)
	}

	return entry, nil
}

func (r *EntryRepository) ListByDate(ctx context.Context, date model.Date) ([]model.AccessEntry, error) {
	query := `SELECT id, user_id, shift_id, entry_date, entry_minute, recorded_at
			  FROM access_entries
			  WHERE entry_date = $1
			  ORDER BY recorded_at, id`

	rows, err := r.db.Query(ctx, query, date.Time())
	if err != nil {
		return nil, storeErr("failed to list access entries", err)
	}
	defer rows.Close()

	entries := make([]model.AccessEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, storeErr("failed to scan access entry", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("failed to list access entries", err)
	}

	return entries, nil
}

func (r *EntryRepository) ExistsForShift(ctx context.Context, shiftID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM access_entries WHERE shift_id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, shiftID).Scan(&exists); err != nil {
		return false, storeErr("failed to check entries for shift", err)
	}

	return exists, nil
}

func scanEntry(row pgx.Row) (model.AccessEntry, error) {
	var (
		entry     model.AccessEntry
		entryDate time.Time
		minute    int
	)
	err := row.Scan(&entry.ID, &entry.UserID, &entry.ShiftID, &entryDate, &minute, &entry.RecordedAt)
	if err != nil {
		return model.AccessEntry{}, err
	}
	entry.Date = model.DateOf(entryDate)
	entry.Time = model.TimeOfDay(minute)
	return entry, nil
}
