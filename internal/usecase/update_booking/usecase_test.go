package update_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/testutil"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

const (
	ownerID  = "client-1"
	targetID = "7f1c7d8e-0b7c-4a44-9a53-2c3e5d9f0a11"
	otherID  = "0a6f7b11-3a8d-4d47-8f6e-5b1e2d3c4f22"
)

type fixture struct {
	uc      *UseCase
	repo    *testutil.BookingRepo
	tx      *testutil.TxManager
	metrics *testutil.Metrics
}

func newFixture() *fixture {
	f := &fixture{
		repo:    testutil.NewBookingRepo(),
		tx:      &testutil.TxManager{},
		metrics: testutil.NewMetrics(),
	}
	f.uc = NewUseCase(f.repo, f.tx, f.metrics, logger.Nop())
	return f
}

func booking(id, room, date, start, end string) *domain.Booking {
	d := types.DateString(date)
	return &domain.Booking{
		ID:          id,
		ClientID:    ownerID,
		Room:        room,
		MeetingDate: d,
		StartTime:   domain.ComposeTimestamp(d, types.TimeString(start)),
		EndTime:     domain.ComposeTimestamp(d, types.TimeString(end)),
		Status:      domain.StatusActive,
	}
}

func TestExecute_EndTimeOverlapsNeighbour(t *testing.T) {
	f := newFixture()
	f.repo.Put(booking(targetID, "A101", "2025-03-01", "09:00", "10:00"))
	f.repo.Put(booking(otherID, "A101", "2025-03-01", "10:15", "11:00"))

	_, err := f.uc.Execute(context.Background(), &Request{
		ClientID:  ownerID,
		BookingID: targetID,
		EndTime:   ptr.Ptr("10:30"),
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	stored, err := f.repo.GetByID(context.Background(), targetID)
	require.NoError(t, err)
	assert.Equal(t, domain.Timestamp("2025-03-01T10:00"), stored.EndTime)
	assert.Equal(t, 0, f.repo.Writes)
	assert.Equal(t, 1, f.metrics.Count("update", "conflict"))
}

func TestExecute_ExtendEndTime(t *testing.T) {
	f := newFixture()
	f.repo.Put(booking(targetID, "A101", "2025-03-01", "09:00", "10:00"))
	f.repo.Put(booking(otherID, "A101", "2025-03-01", "10:15", "11:00"))

	result, err := f.uc.Execute(context.Background(), &Request{
		ClientID:  ownerID,
		BookingID: targetID,
		EndTime:   ptr.Ptr("10:15"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01T09:00", result.StartTimestamp)
	assert.Equal(t, "2025-03-01T10:15", result.EndTimestamp)
	assert.Equal(t, "10:15", result.EndTime)
	assert.Equal(t, 1, f.repo.Writes)
	assert.Equal(t, 1, f.tx.Calls)
}

func TestExecute_OwnIntervalDoesNotConflict(t *testing.T) {
	f := newFixture()
	f.repo.Put(booking(targetID, "A101", "2025-03-01", "09:00", "10:00"))

	result, err := f.uc.Execute(context.Background(), &Request{
		ClientID:  ownerID,
		BookingID: targetID,
		StartTime: ptr.Ptr("09:30"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01T09:30", result.StartTimestamp)
	assert.Equal(t, "2025-03-01T10:00", result.EndTimestamp)
}

func TestExecute_MoveDateKeepsTimes(t *testing.T) {
	f := newFixture()
	f.repo.Put(booking(targetID, "A101", "2025-03-01", "09:00", "10:00"))

	result, err := f.uc.Execute(context.Background(), &Request{
		ClientID:    ownerID,
		BookingID:   targetID,
		MeetingDate: ptr.Ptr("2025-03-02"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-02", result.MeetingDate)
	assert.Equal(t, "2025-03-02T09:00", result.StartTimestamp)
	assert.Equal(t, "2025-03-02T10:00", result.EndTimestamp)
}

func TestExecute_ChangeRoom(t *testing.T) {
	f := newFixture()
	f.repo.Put(booking(targetID, "A101", "2025-03-01", "09:00", "10:00"))
	f.repo.Put(booking(otherID, "B202", "2025-03-01", "09:30", "10:30"))

	_, err := f.uc.Execute(context.Background(), &Request{
		ClientID:  ownerID,
		BookingID: targetID,
		Room:      ptr.Ptr("B202"),
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	result, err := f.uc.Execute(context.Background(), &Request{
		ClientID:  ownerID,
		BookingID: targetID,
		Room:      ptr.Ptr("  C303 "),
	})
	require.NoError(t, err)
	assert.Equal(t, "C303", result.Room)
}

func TestExecute_Description(t *testing.T) {
	f := newFixture()
	f.repo.Put(booking(targetID, "A101", "2025-03-01", "09:00", "10:00"))

	result, err := f.uc.Execute(context.Background(), &Request{
		ClientID:    ownerID,
		BookingID:   targetID,
		Description: ptr.Ptr("Ретро"),
	})
	require.NoError(t, err)
	require.NotNil(t, result.Description)
	assert.Equal(t, "Ретро", *result.Description)

	result, err = f.uc.Execute(context.Background(), &Request{
		ClientID:    ownerID,
		BookingID:   targetID,
		Description: ptr.Ptr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, result.Description)
	assert.Equal(t, 2, f.repo.Writes)
}

func TestExecute_UnchangedValuesSkipWrite(t *testing.T) {
	f := newFixture()
	f.repo.Put(booking(targetID, "A101", "2025-03-01", "09:00", "10:00"))

	result, err := f.uc.Execute(context.Background(), &Request{
		ClientID:  ownerID,
		BookingID: targetID,
		Room:      ptr.Ptr("A101"),
		StartTime: ptr.Ptr("09:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, targetID, result.ID)
	assert.Equal(t, 0, f.repo.Writes)
}

func TestExecute_ResultingRangeInvalid(t *testing.T) {
	f := newFixture()
	f.repo.Put(booking(targetID, "A101", "2025-03-01", "09:00", "10:00"))

	_, err := f.uc.Execute(context.Background(), &Request{
		ClientID:  ownerID,
		BookingID: targetID,
		StartTime: ptr.Ptr("10:00"),
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
	assert.Equal(t, 0, f.repo.Writes)
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture()
	canceled := booking(targetID, "A101", "2025-03-01", "09:00", "10:00")
	canceled.Status = domain.StatusCanceled
	f.repo.Put(canceled)

	foreign := booking(otherID, "A101", "2025-03-02", "09:00", "10:00")
	foreign.ClientID = "client-2"
	f.repo.Put(foreign)

	tests := []struct {
		name string
		id   string
	}{
		{name: "canceled", id: targetID},
		{name: "foreign", id: otherID},
		{name: "missing", id: "b4c1a3d2-1111-4a44-9a53-2c3e5d9f0a11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), &Request{
				ClientID:  ownerID,
				BookingID: tt.id,
				EndTime:   ptr.Ptr("11:00"),
			})
			assert.ErrorIs(t, err, ErrBookingNotFound)
		})
	}
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name:    "bad id",
			req:     &Request{ClientID: ownerID, BookingID: "42", EndTime: ptr.Ptr("11:00")},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "no fields",
			req:     &Request{ClientID: ownerID, BookingID: targetID},
			wantErr: ErrNoFields,
		},
		{
			name:    "only empty room",
			req:     &Request{ClientID: ownerID, BookingID: targetID, Room: ptr.Ptr("")},
			wantErr: ErrNoFields,
		},
		{
			name:    "bad date",
			req:     &Request{ClientID: ownerID, BookingID: targetID, MeetingDate: ptr.Ptr("01.03.2025")},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "bad time",
			req:     &Request{ClientID: ownerID, BookingID: targetID, StartTime: ptr.Ptr("9:00")},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "empty time",
			req:     &Request{ClientID: ownerID, BookingID: targetID, EndTime: ptr.Ptr("")},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, f.tx.Calls)
		})
	}
}

func TestExecute_StoreErrors(t *testing.T) {
	t.Run("exclusion constraint", func(t *testing.T) {
		f := newFixture()
		f.repo.Put(booking(targetID, "A101", "2025-03-01", "09:00", "10:00"))
		f.tx.Err = bookingRepo.ErrConflict

		_, err := f.uc.Execute(context.Background(), &Request{ClientID: ownerID, BookingID: targetID, EndTime: ptr.Ptr("10:30")})
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("serialization failure", func(t *testing.T) {
		f := newFixture()
		f.repo.Put(booking(targetID, "A101", "2025-03-01", "09:00", "10:00"))
		f.tx.Err = txmanager.ErrSerializationFailure

		_, err := f.uc.Execute(context.Background(), &Request{ClientID: ownerID, BookingID: targetID, EndTime: ptr.Ptr("10:30")})
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("serialization failure on re-read", func(t *testing.T) {
		f := newFixture()
		f.repo.Put(booking(targetID, "A101", "2025-03-01", "09:00", "10:00"))
		f.repo.GetByIDErr = fmt.Errorf("%w: GetByID - 40001", bookingRepo.ErrConflict)

		_, err := f.uc.Execute(context.Background(), &Request{ClientID: ownerID, BookingID: targetID, EndTime: ptr.Ptr("10:30")})
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
		assert.NotErrorIs(t, err, ErrInternal)
		assert.Equal(t, 1, f.metrics.Count("update", "conflict"))
	})

	t.Run("database down", func(t *testing.T) {
		f := newFixture()
		f.repo.Err = errors.New("connection refused")

		_, err := f.uc.Execute(context.Background(), &Request{ClientID: ownerID, BookingID: targetID, EndTime: ptr.Ptr("10:30")})
		assert.ErrorIs(t, err, ErrInternal)
		assert.Equal(t, 1, f.metrics.Count("update", "error"))
	})
}
