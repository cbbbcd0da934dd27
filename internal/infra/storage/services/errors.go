package services

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("services.repository: service not found")

	// ErrInvalidReference возвращается, если категория, район или вендор не существуют
	ErrInvalidReference = errors.New("services.repository: category, city or vendor does not exist")

	// ErrServiceInUse возвращается при удалении услуги, на которую ссылаются бронирования
	ErrServiceInUse = errors.New("services.repository: service has bookings")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("services.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("services.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("services.repository: failed to scan row")
)
