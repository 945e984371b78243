package update_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных полях запроса
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrNoFields возвращается, когда не передано ни одного поля для изменения
	ErrNoFields = errors.New("update_booking: no fields to update")

	// ErrInvalidTimeRange возвращается, когда после изменения конец не позже начала
	ErrInvalidTimeRange = errors.New("update_booking: end time must be after start time")

	// ErrBookingNotFound возвращается, когда активного бронирования клиента с таким ID нет
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrSlotNotAvailable возвращается, когда новый интервал пересекается с другой активной бронью
	ErrSlotNotAvailable = errors.New("update_booking: room is already booked for this interval")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
