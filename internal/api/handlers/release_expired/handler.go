package release_expired

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /automation/release-expired
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.GetClientID(r.Context())
	if clientID == "" {
		handlers.RespondUnauthorized(w, "")
		return
	}

	result, err := h.service.ReleaseExpired(r.Context())
	if err != nil {
		h.logger.Error("POST /automation/release-expired - Failed to release bookings: error=%v", err)
		handlers.RespondInternalError(w, err)
		return
	}

	h.logger.Info("POST /automation/release-expired - Released %d bookings, requested by client_id=%s",
		result.Released, clientID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
