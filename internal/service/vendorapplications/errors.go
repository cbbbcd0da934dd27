package vendorapplications

import "errors"

var (
	// ErrApplicationNotFound возвращается, когда заявка не найдена
	ErrApplicationNotFound = errors.New("vendor application not found")

	// ErrAlreadyReviewed возвращается при повторном рассмотрении заявки
	ErrAlreadyReviewed = errors.New("vendor application already reviewed")

	// ErrApplicationExists возвращается, если у пользователя уже есть открытая или одобренная заявка
	ErrApplicationExists = errors.New("user already has a pending or approved application")

	// ErrAlreadyVendor возвращается, если пользователь уже вендор или администратор
	ErrAlreadyVendor = errors.New("user already has vendor or admin role")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
