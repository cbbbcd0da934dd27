package catalog

import "errors"

var (
	// ErrCategoryNotFound возвращается, когда категория не найдена
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCityNotFound возвращается, когда район не найден
	ErrCityNotFound = errors.New("city not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrVendorNotFound возвращается, когда у пользователя нет профиля вендора
	ErrVendorNotFound = errors.New("vendor profile not found")

	// ErrAlreadyExists возвращается при нарушении уникальности (slug категории, район)
	ErrAlreadyExists = errors.New("already exists")

	// ErrInUse возвращается при удалении записи, на которую ссылаются другие
	ErrInUse = errors.New("resource is in use")

	// ErrAccessDenied возвращается при попытке изменить чужую услугу
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
