package register

import (
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/auth/models"
)

// RegisterRequest HTTP request model
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Validate проверяет поля так же, как это делает сервис, но возвращает ошибки по каждому полю
func (r *RegisterRequest) Validate(minPasswordLength int) []handlers.FieldError {
	var errs []handlers.FieldError

	if addr, err := mail.ParseAddress(r.Email); err != nil || addr.Address != r.Email {
		errs = append(errs, handlers.FieldError{Field: "email", Message: "некорректный e-mail"})
	}
	if minPasswordLength <= 0 {
		minPasswordLength = domain.DefaultMinPasswordLength
	}
	if len([]rune(r.Password)) < minPasswordLength {
		errs = append(errs, handlers.FieldError{Field: "password", Message: "пароль слишком короткий"})
	} else if len(r.Password) > domain.MaxPasswordBytes {
		errs = append(errs, handlers.FieldError{Field: "password", Message: "пароль слишком длинный"})
	}
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, handlers.FieldError{Field: "name", Message: "имя обязательно"})
	}

	return errs
}

func (r *RegisterRequest) ToServiceRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		Email:    r.Email,
		Password: r.Password,
		Name:     r.Name,
	}
}
