package city

import "errors"

var (
	// ErrCityNotFound возвращается, когда запись не найдена
	ErrCityNotFound = errors.New("city.repository: city not found")

	// ErrCityAlreadyExists возвращается при нарушении уникальности
	ErrCityAlreadyExists = errors.New("city.repository: city already exists")

	// ErrCityInUse возвращается при удалении записи, на которую ссылаются услуги
	ErrCityInUse = errors.New("city.repository: city is referenced by services")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("city.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("city.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("city.repository: failed to scan row")
)
