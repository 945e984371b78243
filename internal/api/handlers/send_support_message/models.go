package send_support_message

// SendMessageRequest HTTP request model
type SendMessageRequest struct {
	Message string `json:"message"`
}
