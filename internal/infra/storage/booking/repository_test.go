package booking_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

func newBooking(clientID, room string, date types.DateString, start, end types.TimeString) *domain.Booking {
	return &domain.Booking{
		ID:          uuid.NewString(),
		ClientID:    clientID,
		Room:        room,
		MeetingDate: date,
		StartTime:   domain.ComposeTimestamp(date, start),
		EndTime:     domain.ComposeTimestamp(date, end),
		Status:      domain.StatusActive,
	}
}

func TestRepository_CreateAndConflict(t *testing.T) {
	db := storagetest.Open(t)
	repo := booking.NewRepository(db)
	ctx := context.Background()

	clientID := storagetest.CreateClient(t, db)
	room := storagetest.Room("A101")

	created, err := repo.Create(ctx, newBooking(clientID, room, "2025-03-01", "09:00", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, domain.Timestamp("2025-03-01T09:00"), created.StartTime)
	assert.Equal(t, "10:00", created.EndTime.TimeOfDay().String())
	assert.Equal(t, types.DateString("2025-03-01"), created.MeetingDate)
	assert.Equal(t, domain.StatusActive, created.Status)
	assert.Nil(t, created.Description)

	conflict, err := repo.HasConflict(ctx, domain.ConflictQuery{
		Room: room, MeetingDate: "2025-03-01", Start: "2025-03-01T09:30", End: "2025-03-01T09:45",
	})
	require.NoError(t, err)
	assert.True(t, conflict)

	// соседний интервал не конфликтует
	conflict, err = repo.HasConflict(ctx, domain.ConflictQuery{
		Room: room, MeetingDate: "2025-03-01", Start: "2025-03-01T10:00", End: "2025-03-01T10:30",
	})
	require.NoError(t, err)
	assert.False(t, conflict)

	// бронь не конфликтует сама с собой
	conflict, err = repo.HasConflict(ctx, domain.ConflictQuery{
		Room: room, MeetingDate: "2025-03-01", Start: "2025-03-01T09:00", End: "2025-03-01T10:30",
		ExcludeID: &created.ID,
	})
	require.NoError(t, err)
	assert.False(t, conflict)

	// в обход проверки запись отклоняет exclusion-ограничение
	_, err = repo.Create(ctx, newBooking(clientID, room, "2025-03-01", "09:30", "09:45"))
	assert.ErrorIs(t, err, booking.ErrConflict)
}

func TestRepository_ListOrderedByStart(t *testing.T) {
	db := storagetest.Open(t)
	repo := booking.NewRepository(db)
	ctx := context.Background()

	clientID := storagetest.CreateClient(t, db)
	room := storagetest.Room("B2")

	late, err := repo.Create(ctx, newBooking(clientID, room, "2025-03-02", "15:00", "16:00"))
	require.NoError(t, err)
	early, err := repo.Create(ctx, newBooking(clientID, room, "2025-03-01", "08:00", "09:00"))
	require.NoError(t, err)
	require.NoError(t, repo.Cancel(ctx, early.ID, clientID))

	list, err := repo.ListByClient(ctx, clientID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, early.ID, list[0].ID)
	assert.Equal(t, domain.StatusCanceled, list[0].Status)
	assert.Equal(t, late.ID, list[1].ID)
}

func TestRepository_CancelIsNotIdempotent(t *testing.T) {
	db := storagetest.Open(t)
	repo := booking.NewRepository(db)
	ctx := context.Background()

	owner := storagetest.CreateClient(t, db)
	stranger := storagetest.CreateClient(t, db)

	b, err := repo.Create(ctx, newBooking(owner, storagetest.Room("C3"), "2025-03-01", "09:00", "10:00"))
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Cancel(ctx, b.ID, stranger), booking.ErrBookingNotFound)
	require.NoError(t, repo.Cancel(ctx, b.ID, owner))
	assert.ErrorIs(t, repo.Cancel(ctx, b.ID, owner), booking.ErrBookingNotFound)

	_, err = repo.GetActiveOwned(ctx, b.ID, owner)
	assert.ErrorIs(t, err, booking.ErrBookingNotFound)
}

func TestRepository_UpdateChangedColumns(t *testing.T) {
	db := storagetest.Open(t)
	repo := booking.NewRepository(db)
	ctx := context.Background()

	clientID := storagetest.CreateClient(t, db)
	room := storagetest.Room("D4")

	b, err := repo.Create(ctx, newBooking(clientID, room, "2025-03-01", "09:00", "10:00"))
	require.NoError(t, err)

	newDate := types.DateString("2025-03-05")
	start := domain.ComposeTimestamp(newDate, "09:00")
	end := domain.ComposeTimestamp(newDate, "10:00")
	err = repo.Update(ctx, b.ID, domain.BookingChanges{
		MeetingDate:    &newDate,
		StartTime:      &start,
		EndTime:        &end,
		SetDescription: true,
		Description:    ptr.Ptr("планерка"),
	})
	require.NoError(t, err)

	updated, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, newDate, updated.MeetingDate)
	assert.Equal(t, start, updated.StartTime)
	assert.Equal(t, room, updated.Room)
	assert.Equal(t, ptr.Ptr("планерка"), updated.Description)
}

func TestRepository_ReleaseExpired(t *testing.T) {
	db := storagetest.Open(t)
	repo := booking.NewRepository(db)
	ctx := context.Background()

	clientID := storagetest.CreateClient(t, db)
	room := storagetest.Room("E5")

	past, err := repo.Create(ctx, newBooking(clientID, room, "2000-01-01", "09:00", "10:00"))
	require.NoError(t, err)
	future, err := repo.Create(ctx, newBooking(clientID, room, "2999-01-01", "09:00", "10:00"))
	require.NoError(t, err)

	released, err := repo.ReleaseExpired(ctx, "2025-03-01T00:00")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, released, int64(1))

	got, err := repo.GetByID(ctx, past.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCanceled, got.Status)

	got, err = repo.GetByID(ctx, future.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, got.Status)
}

// Параллельные создания одного слота: ровно одно успешно, остальные получают конфликт
func TestRepository_ConcurrentCreateSameSlot(t *testing.T) {
	db := storagetest.Open(t)
	repo := booking.NewRepository(db)
	tm := txmanager.NewTransactionManager(db)

	clientID := storagetest.CreateClient(t, db)
	room := storagetest.Room("RACE")

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := tm.DoSerializable(context.Background(), func(ctx context.Context) error {
				b := newBooking(clientID, room, "2025-03-01", "09:00", "10:00")
				taken, err := repo.HasConflict(ctx, domain.ConflictQuery{
					Room: room, MeetingDate: b.MeetingDate, Start: b.StartTime, End: b.EndTime,
				})
				if err != nil {
					return err
				}
				if taken {
					return booking.ErrConflict
				}
				_, err = repo.Create(ctx, b)
				return err
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, booking.ErrConflict), errors.Is(err, txmanager.ErrSerializationFailure):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)

	list, err := repo.ListByClient(context.Background(), clientID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
