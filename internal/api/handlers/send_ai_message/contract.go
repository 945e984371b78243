package send_ai_message

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/chat/models"
)

type ChatService interface {
	SendAI(ctx context.Context, req *models.SendMessageRequest) (*models.AIMessageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
