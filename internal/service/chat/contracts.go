package chat

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// MessageRepository журнал сообщений поддержки
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.SupportMessage) (*domain.SupportMessage, error)
	ListByClient(ctx context.Context, clientID string, channel domain.Channel) ([]*domain.SupportMessage, error)
}

// ClientRepository источник доступности клиента для контекста ассистента
type ClientRepository interface {
	GetAvailability(ctx context.Context, id string) (domain.Availability, error)
}

// Assistant генератор ответов; никогда не возвращает ошибку, при сбое отвечает локально
type Assistant interface {
	Generate(ctx context.Context, message string, availability domain.Availability) string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
