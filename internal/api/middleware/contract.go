package middleware

import (
	"github.com/m04kA/SMC-RoomBookingService/pkg/authtoken"
)

// TokenVerifier проверка bearer-токена
type TokenVerifier interface {
	Verify(raw string) (*authtoken.Identity, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
