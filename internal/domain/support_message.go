package domain

import "time"

// Channel канал сообщения
type Channel string

const (
	ChannelSupport Channel = "SUPPORT"
	ChannelAI      Channel = "AI"
)

// SupportMessage сообщение в поддержку или AI-ассистенту (только добавление)
type SupportMessage struct {
	ID         string
	ClientID   string
	Channel    Channel
	Message    string
	AIResponse *string
	CreatedAt  time.Time
}
