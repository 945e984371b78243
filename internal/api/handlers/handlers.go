package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/google/uuid"
)

const (
	msgInternalError = "внутренняя ошибка сервера"
	msgUnauthorized  = "требуется аутентификация"
	msgInvalidBody   = "некорректные данные запроса"
)

// ErrEmptyBody возвращается DecodeJSON для пустого тела запроса
var ErrEmptyBody = errors.New("handlers: empty request body")

var exposeDetails atomic.Bool

// SetExposeDetails включает поле details в ответах 500 (только для development)
func SetExposeDetails(enabled bool) {
	exposeDetails.Store(enabled)
}

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Details string       `json:"details,omitempty"`
}

// FieldError ошибка валидации конкретного поля
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DecodeJSON декодирует тело запроса в v
// Лимит размера тела задается middleware.BodyLimit
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// RespondJSON пишет v как JSON с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondValidationError 400 со списком ошибок по полям
func RespondValidationError(w http.ResponseWriter, errs []FieldError) {
	RespondJSON(w, http.StatusBadRequest, ErrorResponse{Message: msgInvalidBody, Errors: errs})
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = msgUnauthorized
	}
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondTooManyRequests(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusTooManyRequests, message)
}

// RespondInternalError 500 без подробностей; err попадает в ответ только в development
func RespondInternalError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Message: msgInternalError}
	if err != nil && exposeDetails.Load() {
		resp.Details = err.Error()
	}
	RespondJSON(w, http.StatusInternalServerError, resp)
}

// IsUUID проверяет формат идентификатора из пути
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
