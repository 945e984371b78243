package send_support_message

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/chat"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/chat/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMessageRequired    = "поле message обязательно"
	msgInvalidMessage     = "некорректное сообщение"
)

type Handler struct {
	service ChatService
	logger  Logger
}

func NewHandler(service ChatService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /chat/support
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.GetClientID(r.Context())
	if clientID == "" {
		handlers.RespondUnauthorized(w, "")
		return
	}

	var req SendMessageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /chat/support - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		handlers.RespondBadRequest(w, msgMessageRequired)
		return
	}

	result, err := h.service.SendSupport(r.Context(), &models.SendMessageRequest{ClientID: clientID, Message: req.Message})
	if err != nil {
		if errors.Is(err, chat.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidMessage)
			return
		}
		h.logger.Error("POST /chat/support - Failed to save message: client_id=%s, error=%v", clientID, err)
		handlers.RespondInternalError(w, err)
		return
	}

	h.logger.Info("POST /chat/support - Message saved: message_id=%s, client_id=%s", result.ID, clientID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
