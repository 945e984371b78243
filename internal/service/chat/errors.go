package chat

import "errors"

var (
	// ErrInvalidInput возвращается при пустом или слишком длинном сообщении
	ErrInvalidInput = errors.New("chat: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("chat: internal error")
)
