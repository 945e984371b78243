package assistant

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("assistant client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе провайдера
	ErrInvalidResponse = errors.New("assistant client: invalid response")

	// ErrEmptyCompletion возвращается, когда провайдер не вернул текста
	ErrEmptyCompletion = errors.New("assistant client: empty completion")
)
