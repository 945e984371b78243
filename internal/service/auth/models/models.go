package models

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// RegisterRequest запрос на регистрацию
type RegisterRequest struct {
	Email    string
	Password string
	Name     string
}

// LoginRequest запрос на вход
type LoginRequest struct {
	Email    string
	Password string
}

// ClientResponse учетная запись без хеша пароля
type ClientResponse struct {
	ID           string              `json:"id"`
	Email        string              `json:"email"`
	Name         string              `json:"name"`
	Role         *string             `json:"role"`
	Age          *int                `json:"age"`
	Availability domain.Availability `json:"availability"`
	ProfilePhoto *string             `json:"profilePhoto"`
}

// AuthResponse токен и учетная запись
type AuthResponse struct {
	Token  string          `json:"token"`
	Client *ClientResponse `json:"client"`
}

// FromDomainClient конвертирует domain.Client в ClientResponse
func FromDomainClient(c *domain.Client) *ClientResponse {
	return &ClientResponse{
		ID:           c.ID,
		Email:        c.Email,
		Name:         c.Name,
		Role:         c.Role,
		Age:          c.Age,
		Availability: c.Availability,
		ProfilePhoto: c.ProfilePhoto,
	}
}
