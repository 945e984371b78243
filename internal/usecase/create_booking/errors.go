package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при отсутствующих или некорректных полях
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidTimeRange возвращается, когда время окончания не позже времени начала
	ErrInvalidTimeRange = errors.New("create_booking: end time must be after start time")

	// ErrSlotNotAvailable возвращается, когда комната уже занята в пересекающемся интервале
	ErrSlotNotAvailable = errors.New("create_booking: room is already booked for this interval")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
