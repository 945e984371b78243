package get_profile

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/profile"
)

const msgNotFound = "профиль не найден"

type Handler struct {
	service ProfileService
	logger  Logger
}

func NewHandler(service ProfileService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /profile/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.GetClientID(r.Context())
	if clientID == "" {
		handlers.RespondUnauthorized(w, "")
		return
	}

	result, err := h.service.Get(r.Context(), clientID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			h.logger.Warn("GET /profile/me - Profile not found: client_id=%s", clientID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /profile/me - Failed to get profile: client_id=%s, error=%v", clientID, err)
		handlers.RespondInternalError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
