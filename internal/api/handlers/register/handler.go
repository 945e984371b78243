package register

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/auth"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные регистрации"
	msgEmailTaken         = "e-mail уже используется"
)

type Handler struct {
	service           AuthService
	minPasswordLength int
	logger            Logger
}

func NewHandler(service AuthService, minPasswordLength int, logger Logger) *Handler {
	return &Handler{
		service:           service,
		minPasswordLength: minPasswordLength,
		logger:            logger,
	}
}

// Handle POST /auth/register
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if errs := req.Validate(h.minPasswordLength); len(errs) > 0 {
		h.logger.Warn("POST /auth/register - Validation failed: %d field(s)", len(errs))
		handlers.RespondValidationError(w, errs)
		return
	}

	result, err := h.service.Register(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			h.logger.Warn("POST /auth/register - Email already in use: %s", req.Email)
			handlers.RespondConflict(w, msgEmailTaken)

		case errors.Is(err, auth.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /auth/register - Failed to register client: error=%v", err)
			handlers.RespondInternalError(w, err)
		}
		return
	}

	h.logger.Info("POST /auth/register - Client registered: client_id=%s", result.Client.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
