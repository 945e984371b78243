package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListByClient(ctx context.Context, clientID string) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id, clientID string) error
	ReleaseExpired(ctx context.Context, now domain.Timestamp) (int64, error)
}

// TimeProvider источник текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Metrics счетчик исходов операций с бронированиями
type Metrics interface {
	ObserveBooking(operation, outcome string)
	ObserveBookings(operation, outcome string, count int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider возвращает локальное время процесса
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
