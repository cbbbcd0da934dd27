package vendorprofile

import "errors"

var (
	// ErrVendorNotFound возвращается, когда профиль вендора не найден
	ErrVendorNotFound = errors.New("vendorprofile.repository: vendor profile not found")

	// ErrVendorAlreadyExists возвращается, если у пользователя уже есть профиль вендора
	ErrVendorAlreadyExists = errors.New("vendorprofile.repository: vendor profile already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("vendorprofile.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("vendorprofile.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("vendorprofile.repository: failed to scan row")
)
