package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comedorlabs/comedor-server/internal/model"
	"github.com/comedorlabs/comedor-server/internal/repository/memory"
	"github.com/comedorlabs/comedor-server/internal/testutil"
)

// MockEntryStore mocks the EntryStore interface
type MockEntryStore struct {
	mock.Mock
}

func (m *MockEntryStore) Create(ctx context.Context, entry model.AccessEntry) (model.AccessEntry, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(model.AccessEntry), args.Error(1)
}

func (m *MockEntryStore) GetByKey(ctx context.Context, userID string, shiftID uuid.UUID, date model.Date) (model.AccessEntry, error) {
	args := m.Called(ctx, userID, shiftID, date)
	return args.Get(0).(model.AccessEntry), args.Error(1)
}

func (m *MockEntryStore) ListByDate(ctx context.Context, date model.Date) ([]model.AccessEntry, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]model.AccessEntry), args.Error(1)
}

func (m *MockEntryStore) ExistsForShift(ctx context.Context, shiftID uuid.UUID) (bool, error) {
	args := m.Called(ctx, shiftID)
	return args.Bool(0), args.Error(1)
}

// MockShiftStore mocks the ShiftStore interface
type MockShiftStore struct {
	mock.Mock
}

func (m *MockShiftStore) ListActive(ctx context.Context) ([]model.ShiftDefinition, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.ShiftDefinition), args.Error(1)
}

func (m *MockShiftStore) List(ctx context.Context) ([]model.ShiftDefinition, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.ShiftDefinition), args.Error(1)
}

func (m *MockShiftStore) GetByID(ctx context.Context, id uuid.UUID) (model.ShiftDefinition, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.ShiftDefinition), args.Error(1)
}

func (m *MockShiftStore) Create(ctx context.Context, shift model.ShiftDefinition) (model.ShiftDefinition, error) {
	args := m.Called(ctx, shift)
	return args.Get(0).(model.ShiftDefinition), args.Error(1)
}

func (m *MockShiftStore) Update(ctx context.Context, shift model.ShiftDefinition) (model.ShiftDefinition, error) {
	args := m.Called(ctx, shift)
	return args.Get(0).(model.ShiftDefinition), args.Error(1)
}

func (m *MockShiftStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserDirectory mocks the UserDirectory interface
type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) GetByID(ctx context.Context, id string) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func mustTimeOfDay(t *testing.T, s string) model.TimeOfDay {
	t.Helper()
	tod, err := model.ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestAccessService_RecordEntry(t *testing.T) {
	morningID := uuid.New()
	morning := model.ShiftDefinition{
		ID:     morningID,
		Label:  "Desayuno",
		Start:  8 * 60,
		End:    12 * 60,
		Active: true,
	}
	scanTime := time.Date(2024, 3, 18, 8, 5, 0, 0, time.UTC)
	activeUser := model.User{ID: "E-1001", Department: "Producción", Active: true}

	tests := []struct {
		name       string
		userID     string
		now        time.Time
		mockSetup  func(*MockEntryStore, *MockShiftStore, *MockUserDirectory)
		wantStatus EntryStatus
		wantErr    error
	}{
		{
			name:   "accepted inside shift window",
			userID: "E-1001",
			now:    scanTime,
			mockSetup: func(es *MockEntryStore, ss *MockShiftStore, ud *MockUserDirectory) {
				ud.On("GetByID", mock.Anything, "E-1001").Return(activeUser, nil)
				ss.On("ListActive", mock.Anything).Return([]model.ShiftDefinition{morning}, nil)
				es.On("Create", mock.Anything, mock.MatchedBy(func(e model.AccessEntry) bool {
					return e.UserID == "E-1001" && e.ShiftID == morningID && e.Date == model.DateOf(scanTime)
				})).Return(model.AccessEntry{ID: uuid.New(), UserID: "E-1001", ShiftID: morningID}, nil)
			},
			wantStatus: EntryAccepted,
		},
		{
			name:   "duplicate scan reports original time",
			userID: "E-1001",
			now:    scanTime.Add(55 * time.Minute),
			mockSetup: func(es *MockEntryStore, ss *MockShiftStore, ud *MockUserDirectory) {
				ud.On("GetByID", mock.Anything, "E-1001").Return(activeUser, nil)
				ss.On("ListActive", mock.Anything).Return([]model.ShiftDefinition{morning}, nil)
				es.On("Create", mock.Anything, mock.Anything).Return(model.AccessEntry{}, model.ErrDuplicateEntry)
				es.On("GetByKey", mock.Anything, "E-1001", morningID, model.DateOf(scanTime)).
					Return(model.AccessEntry{UserID: "E-1001", ShiftID: morningID, Time: 8*60 + 5, RecordedAt: scanTime}, nil)
			},
			wantStatus: EntryAlreadyRegistered,
		},
		{
			name:   "scan outside every window",
			userID: "E-1001",
			now:    time.Date(2024, 3, 18, 13, 0, 0, 0, time.UTC),
			mockSetup: func(es *MockEntryStore, ss *MockShiftStore, ud *MockUserDirectory) {
				ud.On("GetByID", mock.Anything, "E-1001").Return(activeUser, nil)
				ss.On("ListActive", mock.Anything).Return([]model.ShiftDefinition{morning}, nil)
			},
			wantStatus: EntryOutOfWindow,
		},
		{
			name:   "inactive user rejected before shift resolution",
			userID: "E-1002",
			now:    scanTime,
			mockSetup: func(es *MockEntryStore, ss *MockShiftStore, ud *MockUserDirectory) {
				ud.On("GetByID", mock.Anything, "E-1002").Return(model.User{ID: "E-1002", Active: false}, nil)
			},
			wantStatus: EntryOutOfWindow,
		},
		{
			name:   "unknown user",
			userID: "ghost",
			now:    scanTime,
			mockSetup: func(es *MockEntryStore, ss *MockShiftStore, ud *MockUserDirectory) {
				ud.On("GetByID", mock.Anything, "ghost").Return(model.User{}, model.ErrNotFound)
			},
			wantErr: model.ErrNotFound,
		},
		{
			name:   "catalog load failure",
			userID: "E-1001",
			now:    scanTime,
			mockSetup: func(es *MockEntryStore, ss *MockShiftStore, ud *MockUserDirectory) {
				ud.On("GetByID", mock.Anything, "E-1001").Return(activeUser, nil)
				ss.On("ListActive", mock.Anything).Return([]model.ShiftDefinition{}, model.ErrStoreUnavailable)
			},
			wantErr: model.ErrStoreUnavailable,
		},
		{
			name:   "insert failure",
			userID: "E-1001",
			now:    scanTime,
			mockSetup: func(es *MockEntryStore, ss *MockShiftStore, ud *MockUserDirectory) {
				ud.On("GetByID", mock.Anything, "E-1001").Return(activeUser, nil)
				ss.On("ListActive", mock.Anything).Return([]model.ShiftDefinition{morning}, nil)
				es.On("Create", mock.Anything, mock.Anything).Return(model.AccessEntry{}, model.ErrStoreUnavailable)
			},
			wantErr: model.ErrStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entryStore := &MockEntryStore{}
			shiftStore := &MockShiftStore{}
			directory := &MockUserDirectory{}
			tt.mockSetup(entryStore, shiftStore, directory)

			svc := NewAccess(entryStore, shiftStore, directory, time.UTC, testutil.MakeNoopLogger())
			svc.now = fixedClock(tt.now)

			result, err := svc.RecordEntry(context.Background(), tt.userID)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, result.Status)

			entryStore.AssertExpectations(t)
			shiftStore.AssertExpectations(t)
			directory.AssertExpectations(t)
		})
	}
}

// A duplicate insert whose winning row has vanished before the follow-up
// lookup must surface as a retryable store failure, not as the unknown-user
// signal: the user exists and the kiosk should simply retry.
func TestAccessService_RecordEntry_DuplicateRowVanished(t *testing.T) {
	morningID := uuid.New()
	morning := model.ShiftDefinition{ID: morningID, Label: "Desayuno", Start: 8 * 60, End: 12 * 60, Active: true}
	scanTime := time.Date(2024, 3, 18, 8, 5, 0, 0, time.UTC)

	entryStore := &MockEntryStore{}
	shiftStore := &MockShiftStore{}
	directory := &MockUserDirectory{}

	directory.On("GetByID", mock.Anything, "E-1001").Return(model.User{ID: "E-1001", Active: true}, nil)
	shiftStore.On("ListActive", mock.Anything).Return([]model.ShiftDefinition{morning}, nil)
	entryStore.On("Create", mock.Anything, mock.Anything).Return(model.AccessEntry{}, model.ErrDuplicateEntry)
	entryStore.On("GetByKey", mock.Anything, "E-1001", morningID, model.DateOf(scanTime)).
		Return(model.AccessEntry{}, model.ErrNotFound)

	svc := NewAccess(entryStore, shiftStore, directory, time.UTC, testutil.MakeNoopLogger())
	svc.now = fixedClock(scanTime)

	_, err := svc.RecordEntry(context.Background(), "E-1001")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrStoreUnavailable)

	entryStore.AssertExpectations(t)
}

func TestAccessService_RecordEntry_DuplicateDetails(t *testing.T) {
	morningID := uuid.New()
	morning := model.ShiftDefinition{ID: morningID, Label: "Desayuno", Start: 8 * 60, End: 12 * 60, Active: true}
	firstScan := time.Date(2024, 3, 18, 8, 5, 0, 0, time.UTC)

	entryStore := &MockEntryStore{}
	shiftStore := &MockShiftStore{}
	directory := &MockUserDirectory{}

	directory.On("GetByID", mock.Anything, "E-1001").Return(model.User{ID: "E-1001", Active: true}, nil)
	shiftStore.On("ListActive", mock.Anything).Return([]model.ShiftDefinition{morning}, nil)
	entryStore.On("Create", mock.Anything, mock.Anything).Return(model.AccessEntry{}, model.ErrDuplicateEntry)
	entryStore.On("GetByKey", mock.Anything, "E-1001", morningID, model.DateOf(firstScan)).
		Return(model.AccessEntry{UserID: "E-1001", ShiftID: morningID, Time: 8*60 + 5, RecordedAt: firstScan}, nil)

	svc := NewAccess(entryStore, shiftStore, directory, time.UTC, testutil.MakeNoopLogger())
	svc.now = fixedClock(firstScan.Add(time.Hour))

	result, err := svc.RecordEntry(context.Background(), "E-1001")
	require.NoError(t, err)

	assert.Equal(t, EntryAlreadyRegistered, result.Status)
	assert.Equal(t, "Desayuno", result.ShiftLabel)
	assert.Equal(t, firstScan, result.RegisteredAt)
}

// The full kiosk scenario against the real in-memory ledger: first scan is
// accepted, a repeat within the same shift is rejected with the original
// time, and a scan outside every window is rejected without trace.
func TestAccessService_ScanScenario(t *testing.T) {
	store := memory.New()
	store.PutShift(model.ShiftDefinition{
		ID:     uuid.New(),
		Label:  "Morning",
		Start:  mustTimeOfDay(t, "08:00"),
		End:    mustTimeOfDay(t, "12:00"),
		Active: true,
	})
	store.PutUser(model.User{ID: "U-1", Name: "U", Active: true})

	svc := NewAccess(store.Entries(), store.Shifts(), store.Users(), time.UTC, testutil.MakeNoopLogger())

	day := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()

	svc.now = fixedClock(day.Add(8*time.Hour + 5*time.Minute))
	first, err := svc.RecordEntry(ctx, "U-1")
	require.NoError(t, err)
	require.Equal(t, EntryAccepted, first.Status)
	assert.Equal(t, "Morning", first.ShiftLabel)
	assert.Equal(t, "08:05", first.Entry.Time.String())

	svc.now = fixedClock(day.Add(9 * time.Hour))
	second, err := svc.RecordEntry(ctx, "U-1")
	require.NoError(t, err)
	require.Equal(t, EntryAlreadyRegistered, second.Status)
	assert.Equal(t, "Morning", second.ShiftLabel)
	assert.Equal(t, "08:05", model.TimeOfDayOf(second.RegisteredAt).String())

	svc.now = fixedClock(day.Add(13 * time.Hour))
	third, err := svc.RecordEntry(ctx, "U-1")
	require.NoError(t, err)
	require.Equal(t, EntryOutOfWindow, third.Status)

	// Rejected scans leave no trace in the ledger.
	entries, err := store.Entries().ListByDate(ctx, model.DateOf(day))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

// Issuing the identical request twice never produces two stored rows.
func TestAccessService_RecordEntry_Idempotent(t *testing.T) {
	store := memory.New()
	store.PutShift(model.ShiftDefinition{
		ID:     uuid.New(),
		Label:  "Comida",
		Start:  mustTimeOfDay(t, "13:00"),
		End:    mustTimeOfDay(t, "16:00"),
		Active: true,
	})
	store.PutUser(model.User{ID: "U-1", Active: true})

	svc := NewAccess(store.Entries(), store.Shifts(), store.Users(), time.UTC, testutil.MakeNoopLogger())
	at := time.Date(2024, 3, 18, 13, 30, 0, 0, time.UTC)
	svc.now = fixedClock(at)

	ctx := context.Background()
	first, err := svc.RecordEntry(ctx, "U-1")
	require.NoError(t, err)
	second, err := svc.RecordEntry(ctx, "U-1")
	require.NoError(t, err)

	assert.Equal(t, EntryAccepted, first.Status)
	assert.Equal(t, EntryAlreadyRegistered, second.Status)

	entries, err := store.Entries().ListByDate(ctx, model.DateOf(at))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
