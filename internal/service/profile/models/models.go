package models

import (
	"encoding/json"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// UpdateProfileRequest запрос на изменение профиля
// Пустые строки и nil игнорируются; Availability хранит исходный JSON, чтобы отличать null от отсутствия
type UpdateProfileRequest struct {
	ClientID     string
	Name         *string
	Role         *string
	Age          *int
	Availability json.RawMessage
	ProfilePhoto *string
}

// ProfileResponse профиль клиента
type ProfileResponse struct {
	ID           string              `json:"id"`
	Email        string              `json:"email"`
	Name         string              `json:"name"`
	Role         *string             `json:"role"`
	Age          *int                `json:"age"`
	Availability domain.Availability `json:"availability"`
	ProfilePhoto *string             `json:"profilePhoto"`
}

// FromDomainClient конвертирует domain.Client в ProfileResponse
func FromDomainClient(c *domain.Client) *ProfileResponse {
	return &ProfileResponse{
		ID:           c.ID,
		Email:        c.Email,
		Name:         c.Name,
		Role:         c.Role,
		Age:          c.Age,
		Availability: c.Availability,
		ProfilePhoto: c.ProfilePhoto,
	}
}
