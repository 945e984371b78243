package profile

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// ClientRepository интерфейс хранилища профилей
type ClientRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	UpdateProfile(ctx context.Context, id string, changes domain.ProfileChanges) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
