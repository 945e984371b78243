package update_booking

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveOwned(ctx context.Context, id, clientID string) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	HasConflict(ctx context.Context, q domain.ConflictQuery) (bool, error)
	Update(ctx context.Context, id string, changes domain.BookingChanges) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчик исходов операций с бронированиями
type Metrics interface {
	ObserveBooking(operation, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
