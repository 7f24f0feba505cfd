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

var (
	ErrEmptyShiftLabel = errors.New("shift label is required")
	ErrEmptyWindow     = errors.New("shift window must not be empty")
)

// ShiftParams are the caller-editable fields of a shift definition.
type ShiftParams struct {
	Label  string
	Start  model.TimeOfDay
	End    model.TimeOfDay
	Active bool
}

func (p ShiftParams) validate() error {
	if p.Label == "" {
		return ErrEmptyShiftLabel
	}
	if p.Start == p.End {
		return ErrEmptyWindow
	}
	return nil
}

// Shift is the catalog read and admin surface for shift definitions.
type Shift struct {
	shiftStore model.ShiftStore
	logger     *logger.Logger
}

// NewShift creates the shift catalog service.
func NewShift(shiftStore model.ShiftStore, logger *logger.Logger) *Shift {
	return &Shift{
		shiftStore: shiftStore,
		logger:     logger,
	}
}

// Catalog returns a snapshot of the active shift windows.
func (s *Shift) Catalog(ctx context.Context) (model.ShiftCatalog, error) {
	shifts, err := s.shiftStore.ListActive(ctx)
	if err != nil {
		return model.ShiftCatalog{}, fmt.Errorf("failed to load shift catalog: %w", err)
	}
	return model.NewShiftCatalog(shifts), nil
}

// List returns every shift definition, active or not, ordered ascending by
// start time.
func (s *Shift) List(ctx context.Context) ([]model.ShiftDefinition, error) {
	shifts, err := s.shiftStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return shifts, nil
}

// Create adds a shift definition. The catalog does not reject overlapping
// windows; resolution order makes overlaps deterministic.
func (s *Shift) Create(ctx context.Context, params ShiftParams) (model.ShiftDefinition, error) {
	if err := params.validate(); err != nil {
		return model.ShiftDefinition{}, err
	}

	now := time.Now()
	shift := model.ShiftDefinition{
		ID:        uuid.New(),
		Label:     params.Label,
		Start:     params.Start,
		End:       params.End,
		Active:    params.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.shiftStore.Create(ctx, shift)
	if err != nil {
		return model.ShiftDefinition{}, fmt.Errorf("failed to create shift: %w", err)
	}

	s.logger.Info("Shift service: shift created",
		"shift_id", created.ID,
		"label", created.Label,
		"window", fmt.Sprintf("%s-%s", created.Start, created.End))

	return created, nil
}

// Update edits a shift definition's label, window or active flag.
func (s *Shift) Update(ctx context.Context, id uuid.UUID, params ShiftParams) (model.ShiftDefinition, error) {
	if err := params.validate(); err != nil {
		return model.ShiftDefinition{}, err
	}

	shift, err := s.shiftStore.GetByID(ctx, id)
	if err != nil {
		return model.ShiftDefinition{}, fmt.Errorf("failed to get shift %s: %w", id, err)
	}

	shift.Label = params.Label
	shift.Start = params.Start
	shift.End = params.End
	shift.Active = params.Active
	shift.UpdatedAt = time.Now()

	updated, err := s.shiftStore.Update(ctx, shift)
	if err != nil {
		return model.ShiftDefinition{}, fmt.Errorf("failed to update shift %s: %w", id, err)
	}

	return updated, nil
}

// Delete removes a shift definition. Deletion is refused with
// model.ErrShiftHasEntries while any access entry references the shift, so
// the event log never loses its shift context.
func (s *Shift) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.shiftStore.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrShiftHasEntries) || errors.Is(err, model.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete shift %s: %w", id, err)
	}

	s.logger.Info("Shift service: shift deleted", "shift_id", id)

	return nil
}
