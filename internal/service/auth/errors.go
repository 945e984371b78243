package auth

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных email, пароле или имени
	ErrInvalidInput = errors.New("auth: invalid input data")

	// ErrEmailTaken возвращается, когда email уже зарегистрирован
	ErrEmailTaken = errors.New("auth: email already in use")

	// ErrInvalidCredentials возвращается при неизвестном email или неверном пароле
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth: internal error")
)
