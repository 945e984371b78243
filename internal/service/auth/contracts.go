package auth

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// ClientRepository интерфейс хранилища учетных записей
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// PasswordHasher хеширование и проверка паролей
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(hash, password string) bool
}

// TokenIssuer выпуск bearer-токенов
type TokenIssuer interface {
	Issue(clientID, email string) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
