package models

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Request модели

// ListBookingsRequest запрос на получение бронирований клиента
type ListBookingsRequest struct {
	ClientID string
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	ClientID  string
	BookingID string
}

// Response модели

// BookingResponse представление бронирования для клиента
// startTime/endTime - символы 11..15 сохраненных моментов (HH:MM)
type BookingResponse struct {
	ID             string  `json:"id"`
	Room           string  `json:"room"`
	MeetingDate    string  `json:"meetingDate"`
	StartTimestamp string  `json:"startTimestamp"`
	EndTimestamp   string  `json:"endTimestamp"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	Description    *string `json:"description"`
	Status         string  `json:"status"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
}

// MessageResponse ответ с текстовым сообщением
type MessageResponse struct {
	Message string `json:"message"`
}

// ReleaseExpiredResponse результат освобождения завершившихся бронирований
type ReleaseExpiredResponse struct {
	Message  string `json:"message"`
	Released int64  `json:"released"`
}

// Конвертеры

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:             b.ID,
		Room:           b.Room,
		MeetingDate:    b.MeetingDate.String(),
		StartTimestamp: b.StartTime.String(),
		EndTimestamp:   b.EndTime.String(),
		StartTime:      b.StartTime.TimeOfDay().String(),
		EndTime:        b.EndTime.TimeOfDay().String(),
		Description:    b.Description,
		Status:         string(b.Status),
	}
}

// FromDomainBookingList конвертирует список domain.Booking в BookingListResponse
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := &BookingListResponse{
		Bookings: make([]*BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		result.Bookings = append(result.Bookings, FromDomainBooking(b))
	}
	return result
}
