package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/comedorlabs/comedor-server/internal/logger"
	"github.com/comedorlabs/comedor-server/internal/model"
)

// EntryStatus is the terminal decision for one scan attempt.
type EntryStatus string

const (
	// EntryAccepted means the scan was recorded as the first entry for the
	// user's resolved shift today.
	EntryAccepted EntryStatus = "accepted"
	// EntryAlreadyRegistered means an entry for the same user, shift and
	// date already exists.
	EntryAlreadyRegistered EntryStatus = "already_registered"
	// EntryOutOfWindow means no active shift window contains the scan time,
	// or the user is inactive.
	EntryOutOfWindow EntryStatus = "out_of_window"
)

// EntryResult is the outcome of a scan attempt. Rejections are decisions,
// not errors: a rejected scan leaves no trace in the ledger.
type EntryResult struct {
	Status     EntryStatus
	ShiftLabel string
	// Entry is set only when Status is EntryAccepted.
	Entry model.AccessEntry
	// RegisteredAt is the original entry's scan time when Status is
	// EntryAlreadyRegistered, so callers can show "you already entered at".
	RegisteredAt time.Time
}

// Access decides, per scan attempt, whether this is a legitimate first entry
// for the resolved shift or a duplicate.
type Access struct {
	entryStore model.EntryStore
	shiftStore model.ShiftStore
	directory  model.UserDirectory
	location   *time.Location
	logger     *logger.Logger
	now        func() time.Time
}

// NewAccess creates the scan decision service. Scan timestamps are taken
// from the server clock in the given location, never from the caller.
func NewAccess(
	entryStore model.EntryStore,
	shiftStore model.ShiftStore,
	directory model.UserDirectory,
	location *time.Location,
	logger *logger.Logger,
) *Access {
	return &Access{
		entryStore: entryStore,
		shiftStore: shiftStore,
		directory:  directory,
		location:   location,
		logger:     logger,
		now:        time.Now,
	}
}

// RecordEntry evaluates one scan for userID and records it if accepted.
// Every call resolves to exactly one EntryResult or an error; there is no
// partial state. The duplicate check is delegated to the entry store's
// composite-key constraint, so two concurrent scans for the same key yield
// one EntryAccepted and one EntryAlreadyRegistered.
func (a *Access) RecordEntry(ctx context.Context, userID string) (EntryResult, error) {
	user, err := a.directory.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return EntryResult{}, fmt.Errorf("unknown user %q: %w", userID, model.ErrNotFound)
		}
		return EntryResult{}, fmt.Errorf("failed to get user %q: %w", userID, err)
	}

	now := a.now().In(a.location)

	if !user.Active {
		a.logger.Info("Access service: scan rejected, user inactive",
			"user_id", userID)
		return EntryResult{Status: EntryOutOfWindow}, nil
	}

	shifts, err := a.shiftStore.ListActive(ctx)
	if err != nil {
		return EntryResult{}, fmt.Errorf("failed to load shift catalog: %w", err)
	}
	catalog := model.NewShiftCatalog(shifts)

	timeOfDay := model.TimeOfDayOf(now)
	shift, ok := catalog.Resolve(timeOfDay)
	if !ok {
		a.logger.Info("Access service: scan rejected, no active shift",
			"user_id", userID,
			"time", timeOfDay.String(),
			"catalog_version", catalog.Version())
		return EntryResult{Status: EntryOutOfWindow}, nil
	}

	entry := model.AccessEntry{
		ID:         uuid.New(),
		UserID:     user.ID,
		ShiftID:    shift.ID,
		Date:       model.DateOf(now),
		Time:       timeOfDay,
		RecordedAt: now,
	}

	saved, err := a.entryStore.Create(ctx, entry)
	if errors.Is(err, model.ErrDuplicateEntry) {
		existing, err := a.entryStore.GetByKey(ctx, user.ID, shift.ID, entry.Date)
		if err != nil {
			// The winning row vanished between the rejected insert and the
			// lookup. Surface it as a store failure so the kiosk retries.
			return EntryResult{}, fmt.Errorf("failed to load original entry: %w: %w", model.ErrStoreUnavailable, err)
		}
		a.logger.Info("Access service: duplicate scan",
			"user_id", userID,
			"shift", shift.Label,
			"registered_at", existing.Time.String())
		return EntryResult{
			Status:       EntryAlreadyRegistered,
			ShiftLabel:   shift.Label,
			RegisteredAt: existing.RecordedAt,
		}, nil
	}
	if err != nil {
		return EntryResult{}, fmt.Errorf("failed to create access entry: %w", err)
	}

	a.logger.Debug("Access service: entry accepted",
		"user_id", userID,
		"shift", shift.Label,
		"entry_id", saved.ID)

	return EntryResult{
		Status:     EntryAccepted,
		ShiftLabel: shift.Label,
		Entry:      saved,
	}, nil
}
