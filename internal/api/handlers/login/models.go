package login

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/auth/models"
)

// LoginRequest HTTP request model
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() []handlers.FieldError {
	var errs []handlers.FieldError
	if r.Email == "" {
		errs = append(errs, handlers.FieldError{Field: "email", Message: "e-mail обязателен"})
	}
	if r.Password == "" {
		errs = append(errs, handlers.FieldError{Field: "password", Message: "пароль обязателен"})
	}
	return errs
}

func (r *LoginRequest) ToServiceRequest() *models.LoginRequest {
	return &models.LoginRequest{
		Email:    r.Email,
		Password: r.Password,
	}
}
