package list_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
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

// Handle GET /bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.GetClientID(r.Context())
	if clientID == "" {
		handlers.RespondUnauthorized(w, "")
		return
	}

	result, err := h.service.List(r.Context(), &models.ListBookingsRequest{ClientID: clientID})
	if err != nil {
		h.logger.Error("GET /bookings - Failed to get bookings: client_id=%s, error=%v", clientID, err)
		handlers.RespondInternalError(w, err)
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: client_id=%s, count=%d",
		clientID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
