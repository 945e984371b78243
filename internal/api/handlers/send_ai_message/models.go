package send_ai_message

// SendMessageRequest HTTP request model
type SendMessageRequest struct {
	Message string `json:"message"`
}
