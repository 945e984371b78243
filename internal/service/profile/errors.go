package profile

import "errors"

var (
	// ErrProfileNotFound возвращается, когда профиль клиента не найден
	ErrProfileNotFound = errors.New("profile: profile not found")

	// ErrNothingToUpdate возвращается, когда в запросе нет ни одного применимого поля
	ErrNothingToUpdate = errors.New("profile: no fields to update")

	// ErrInvalidAvailability возвращается, когда доступность не является объектом со списками
	ErrInvalidAvailability = errors.New("profile: availability must be an object of arrays keyed by weekday")

	// ErrInvalidInput возвращается при некорректных значениях полей
	ErrInvalidInput = errors.New("profile: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("profile: internal error")
)
