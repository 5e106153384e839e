package auth

import "errors"

var (
	// ErrInvalidCredentials неверный email или пароль
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrInvalidToken токен не прошел проверку
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth: internal error")
)
