package update_profile

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/profile"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgNothingToUpdate     = "нет полей для обновления"
	msgInvalidAvailability = "доступность должна быть объектом со списками слотов по дням недели"
	msgInvalidInput        = "некорректные данные профиля"
	msgNotFound            = "профиль не найден"
)

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

// Handle PUT /profile/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.GetClientID(r.Context())
	if clientID == "" {
		handlers.RespondUnauthorized(w, "")
		return
	}

	var req UpdateProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /profile/me - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest(clientID))
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrNothingToUpdate):
			handlers.RespondBadRequest(w, msgNothingToUpdate)

		case errors.Is(err, profile.ErrInvalidAvailability):
			h.logger.Warn("PUT /profile/me - Invalid availability: client_id=%s", clientID)
			handlers.RespondBadRequest(w, msgInvalidAvailability)

		case errors.Is(err, profile.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, profile.ErrProfileNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PUT /profile/me - Failed to update profile: client_id=%s, error=%v", clientID, err)
			handlers.RespondInternalError(w, err)
		}
		return
	}

	h.logger.Info("PUT /profile/me - Profile updated: client_id=%s", clientID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
