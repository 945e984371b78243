package assistant

// chatMessage сообщение диалога chat completions
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// completionRequest тело запроса POST /chat/completions
type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// completionResponse нужная часть ответа провайдера
type completionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// ErrorResponse модель ошибки провайдера
type ErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}
