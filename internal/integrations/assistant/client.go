package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

const systemPrompt = "Ты ассистент по бронированию переговорных комнат. Отвечай коротко и по делу."

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config параметры подключения к провайдеру
type Config struct {
	Enabled     bool
	BaseURL     string
	APIKey      string
	Model       string
	Timeout     time.Duration
	Temperature float64
}

// Client клиент OpenAI-совместимого chat completions API
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        Logger
	now        func() time.Time
}

// NewClient создает новый экземпляр клиента ассистента
func NewClient(cfg Config, log Logger) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
		now: time.Now,
	}
}

// Complete запрашивает ответ у провайдера
func (c *Client) Complete(ctx context.Context, message string, availability domain.Availability) (string, error) {
	availabilityText := "не указана"
	if availability != nil {
		raw, err := json.Marshal(availability)
		if err != nil {
			return "", fmt.Errorf("%w: failed to encode availability: %v", ErrInternal, err)
		}
		availabilityText = string(raw)
	}

	payload, err := json.Marshal(completionRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("Сообщение: %s\nДоступность пользователя: %s", message, availabilityText)},
		},
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	url := c.cfg.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var completion completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if len(completion.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyCompletion
	}

	return text, nil
}

// Generate возвращает ответ провайдера, а при его отключении или сбое локальный ответ
// Ошибка провайдера не пробрасывается вызывающему
func (c *Client) Generate(ctx context.Context, message string, availability domain.Availability) string {
	if !c.cfg.Enabled || c.cfg.APIKey == "" {
		return c.fallback(message, availability)
	}

	text, err := c.Complete(ctx, message, availability)
	if err != nil {
		// Повышаем уровень до ERROR, чтобы быстрее заметить недоступность провайдера
		c.log.Error("Assistant provider unavailable, using fallback: %v", err)
		return c.fallback(message, availability)
	}

	c.log.Info("Assistant provider answered, model=%s", c.cfg.Model)
	return text
}

func (c *Client) fallback(message string, availability domain.Availability) string {
	return Fallback(message, availability, types.NewDateString(c.now()))
}
