package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда активного бронирования клиента нет (или оно уже отменено)
	ErrBookingNotFound = errors.New("bookings: booking not found or already canceled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
