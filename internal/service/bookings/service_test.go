package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomBookingService/internal/testutil"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

const (
	ownerID = "client-1"
	firstID = "7f1c7d8e-0b7c-4a44-9a53-2c3e5d9f0a11"
	laterID = "0a6f7b11-3a8d-4d47-8f6e-5b1e2d3c4f22"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func booking(id, date, start, end string) *domain.Booking {
	d := types.DateString(date)
	return &domain.Booking{
		ID:          id,
		ClientID:    ownerID,
		Room:        "A101",
		MeetingDate: d,
		StartTime:   domain.ComposeTimestamp(d, types.TimeString(start)),
		EndTime:     domain.ComposeTimestamp(d, types.TimeString(end)),
		Status:      domain.StatusActive,
	}
}

func newService(repo *testutil.BookingRepo, now time.Time) (*Service, *testutil.Metrics) {
	m := testutil.NewMetrics()
	return NewService(repo, fixedClock{now: now}, m, logger.Nop()), m
}

func TestList_OrderedByStart(t *testing.T) {
	repo := testutil.NewBookingRepo()
	repo.Put(booking(laterID, "2025-03-02", "09:00", "10:00"))
	repo.Put(booking(firstID, "2025-03-01", "14:00", "15:00"))

	foreign := booking("b4c1a3d2-1111-4a44-9a53-2c3e5d9f0a11", "2025-03-01", "08:00", "09:00")
	foreign.ClientID = "client-2"
	repo.Put(foreign)

	svc, _ := newService(repo, time.Now())

	result, err := svc.List(context.Background(), &models.ListBookingsRequest{ClientID: ownerID})
	require.NoError(t, err)
	require.Len(t, result.Bookings, 2)
	assert.Equal(t, firstID, result.Bookings[0].ID)
	assert.Equal(t, "14:00", result.Bookings[0].StartTime)
	assert.Equal(t, laterID, result.Bookings[1].ID)
}

func TestList_Empty(t *testing.T) {
	svc, _ := newService(testutil.NewBookingRepo(), time.Now())

	result, err := svc.List(context.Background(), &models.ListBookingsRequest{ClientID: ownerID})
	require.NoError(t, err)
	assert.NotNil(t, result.Bookings)
	assert.Empty(t, result.Bookings)
}

func TestCancel_NotIdempotent(t *testing.T) {
	repo := testutil.NewBookingRepo()
	repo.Put(booking(firstID, "2025-03-01", "09:00", "10:00"))
	svc, m := newService(repo, time.Now())

	req := &models.CancelBookingRequest{ClientID: ownerID, BookingID: firstID}

	result, err := svc.Cancel(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, msgCanceled, result.Message)

	stored, err := repo.GetByID(context.Background(), firstID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCanceled, stored.Status)

	_, err = svc.Cancel(context.Background(), req)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	assert.Equal(t, 1, m.Count("cancel", "canceled"))
	assert.Equal(t, 1, m.Count("cancel", "not_found"))
}

func TestCancel_ForeignOrMissing(t *testing.T) {
	repo := testutil.NewBookingRepo()
	repo.Put(booking(firstID, "2025-03-01", "09:00", "10:00"))
	svc, _ := newService(repo, time.Now())

	_, err := svc.Cancel(context.Background(), &models.CancelBookingRequest{ClientID: "client-2", BookingID: firstID})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.Cancel(context.Background(), &models.CancelBookingRequest{ClientID: ownerID, BookingID: laterID})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.Cancel(context.Background(), &models.CancelBookingRequest{ClientID: ownerID, BookingID: "abc"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel_RepositoryError(t *testing.T) {
	repo := testutil.NewBookingRepo()
	repo.Err = errors.New("connection reset")
	svc, _ := newService(repo, time.Now())

	_, err := svc.Cancel(context.Background(), &models.CancelBookingRequest{ClientID: ownerID, BookingID: firstID})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestReleaseExpired(t *testing.T) {
	repo := testutil.NewBookingRepo()
	repo.Put(booking(firstID, "2025-03-01", "09:00", "10:00"))
	repo.Put(booking(laterID, "2025-03-01", "11:00", "12:00"))

	now := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	svc, m := newService(repo, now)

	result, err := svc.ReleaseExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Released)
	assert.Equal(t, msgReleased, result.Message)

	expired, err := repo.GetByID(context.Background(), firstID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCanceled, expired.Status)

	running, err := repo.GetByID(context.Background(), laterID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, running.Status)

	assert.Equal(t, 1, m.Count("release", "released"))

	result, err = svc.ReleaseExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Released)
	assert.Equal(t, 1, m.Count("release", "released"))
}

func TestReleaseExpired_CountsEveryReleasedBooking(t *testing.T) {
	repo := testutil.NewBookingRepo()
	repo.Put(booking(firstID, "2025-03-01", "09:00", "10:00"))
	repo.Put(booking(laterID, "2025-03-01", "11:00", "12:00"))

	svc, m := newService(repo, time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC))

	result, err := svc.ReleaseExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Released)
	assert.Equal(t, 2, m.Count("release", "released"))
}

func TestReleaseExpired_RepositoryError(t *testing.T) {
	repo := testutil.NewBookingRepo()
	repo.Err = errors.New("timeout")
	svc, _ := newService(repo, time.Now())

	_, err := svc.ReleaseExpired(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
