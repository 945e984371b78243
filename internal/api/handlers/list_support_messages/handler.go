package list_support_messages

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
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

// Handle GET /chat/support
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.GetClientID(r.Context())
	if clientID == "" {
		handlers.RespondUnauthorized(w, "")
		return
	}

	result, err := h.service.ListSupport(r.Context(), clientID)
	if err != nil {
		h.logger.Error("GET /chat/support - Failed to list messages: client_id=%s, error=%v", clientID, err)
		handlers.RespondInternalError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
