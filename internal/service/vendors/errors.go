package vendors

import "errors"

var (
	// ErrVendorNotFound возвращается, когда у пользователя нет профиля вендора
	ErrVendorNotFound = errors.New("vendor profile not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
