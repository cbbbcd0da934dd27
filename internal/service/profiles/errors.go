package profiles

import "errors"

var (
	// ErrProfileNotFound возвращается, когда профиль не найден
	ErrProfileNotFound = errors.New("profile not found")

	// ErrEmailAlreadyExists возвращается при регистрации с занятым email
	ErrEmailAlreadyExists = errors.New("email already registered")

	// ErrVendorRoleRequiresApplication возвращается при попытке выдать роль vendor в обход заявки
	ErrVendorRoleRequiresApplication = errors.New("vendor role is granted only by approving a vendor application")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
