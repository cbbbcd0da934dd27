package vendorapplication

import "errors"

var (
	// ErrApplicationNotFound возвращается, когда заявка не найдена
	ErrApplicationNotFound = errors.New("vendorapplication.repository: application not found")

	// ErrAlreadyReviewed возвращается при попытке рассмотреть заявку не в статусе pending
	ErrAlreadyReviewed = errors.New("vendorapplication.repository: application already reviewed")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("vendorapplication.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("vendorapplication.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("vendorapplication.repository: failed to scan row")
)
