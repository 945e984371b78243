package list_support_messages

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/chat/models"
)

type ChatService interface {
	ListSupport(ctx context.Context, clientID string) ([]*models.MessageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
