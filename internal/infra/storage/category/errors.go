package category

import "errors"

var (
	// ErrCategoryNotFound возвращается, когда запись не найдена
	ErrCategoryNotFound = errors.New("category.repository: category not found")

	// ErrSlugAlreadyExists возвращается при нарушении уникальности
	ErrSlugAlreadyExists = errors.New("category.repository: category slug already exists")

	// ErrCategoryInUse возвращается при удалении записи, на которую ссылаются услуги
	ErrCategoryInUse = errors.New("category.repository: category is referenced by services")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("category.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("category.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("category.repository: failed to scan row")
)
