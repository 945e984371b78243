package update_profile

import (
	"encoding/json"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/profile/models"
)

// UpdateProfileRequest HTTP request model
type UpdateProfileRequest struct {
	Name         *string         `json:"name"`
	Role         *string         `json:"role"`
	Age          *int            `json:"age"`
	Availability json.RawMessage `json:"availability"`
	ProfilePhoto *string         `json:"profilePhoto"`
}

func (r *UpdateProfileRequest) ToServiceRequest(clientID string) *models.UpdateProfileRequest {
	return &models.UpdateProfileRequest{
		ClientID:     clientID,
		Name:         r.Name,
		Role:         r.Role,
		Age:          r.Age,
		Availability: r.Availability,
		ProfilePhoto: r.ProfilePhoto,
	}
}
