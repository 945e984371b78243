package create_booking

import (
	"strings"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Room        string  `json:"room"`
	MeetingDate string  `json:"meetingDate"` // "2025-03-01"
	StartTime   string  `json:"startTime"`   // "09:00"
	EndTime     string  `json:"endTime"`     // "10:00"
	Description *string `json:"description,omitempty"`
}

// Validate проверяет наличие обязательных полей
func (r *CreateBookingRequest) Validate() []handlers.FieldError {
	var errs []handlers.FieldError
	if strings.TrimSpace(r.Room) == "" {
		errs = append(errs, handlers.FieldError{Field: "room", Message: "поле обязательно"})
	}
	if r.MeetingDate == "" {
		errs = append(errs, handlers.FieldError{Field: "meetingDate", Message: "ожидается дата в формате YYYY-MM-DD"})
	}
	if r.StartTime == "" {
		errs = append(errs, handlers.FieldError{Field: "startTime", Message: "ожидается время в формате HH:MM"})
	}
	if r.EndTime == "" {
		errs = append(errs, handlers.FieldError{Field: "endTime", Message: "ожидается время в формате HH:MM"})
	}
	return errs
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(clientID string) *createBooking.Request {
	return &createBooking.Request{
		ClientID:    clientID,
		Room:        r.Room,
		MeetingDate: r.MeetingDate,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Description: r.Description,
	}
}
