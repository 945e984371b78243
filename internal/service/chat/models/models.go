package models

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// SendMessageRequest запрос на отправку сообщения
type SendMessageRequest struct {
	ClientID string
	Message  string
}

// MessageResponse сообщение журнала поддержки
type MessageResponse struct {
	ID         string  `json:"id"`
	Channel    string  `json:"channel"`
	Message    string  `json:"message"`
	AIResponse *string `json:"aiResponse"`
	CreatedAt  string  `json:"createdAt"`
}

// AIMessageResponse ответ ассистента
type AIMessageResponse struct {
	ID         string `json:"id"`
	Message    string `json:"message"`
	AIResponse string `json:"aiResponse"`
	CreatedAt  string `json:"createdAt"`
}

// FormatCreatedAt время создания в UTC с точностью до секунды
func FormatCreatedAt(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FromDomainMessage конвертирует domain.SupportMessage в MessageResponse
func FromDomainMessage(m *domain.SupportMessage) *MessageResponse {
	return &MessageResponse{
		ID:         m.ID,
		Channel:    string(m.Channel),
		Message:    m.Message,
		AIResponse: m.AIResponse,
		CreatedAt:  FormatCreatedAt(m.CreatedAt),
	}
}

// FromDomainMessageList конвертирует список сообщений
func FromDomainMessageList(messages []*domain.SupportMessage) []*MessageResponse {
	result := make([]*MessageResponse, 0, len(messages))
	for _, m := range messages {
		result = append(result, FromDomainMessage(m))
	}
	return result
}
