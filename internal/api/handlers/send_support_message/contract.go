package send_support_message

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/chat/models"
)

type ChatService interface {
	SendSupport(ctx context.Context, req *models.SendMessageRequest) (*models.MessageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
