package coupon

import "errors"

var (
	// ErrCouponNotFound возвращается, когда купон не найден
	ErrCouponNotFound = errors.New("coupon.repository: coupon not found")

	// ErrCodeAlreadyExists возвращается при попытке создать купон с существующим кодом
	ErrCodeAlreadyExists = errors.New("coupon.repository: coupon code already exists")

	// ErrUsageLimitReached возвращается, когда условный инкремент used_count не затронул строк
	ErrUsageLimitReached = errors.New("coupon.repository: usage limit reached")

	// ErrUsageLimitBelowUsed возвращается, когда новый usage_limit меньше текущего used_count
	ErrUsageLimitBelowUsed = errors.New("coupon.repository: usage limit below used count")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("coupon.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("coupon.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("coupon.repository: failed to scan row")
)
