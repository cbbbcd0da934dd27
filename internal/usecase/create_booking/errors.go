package create_booking

import (
	"errors"

	"github.com/m04kA/SMC-MarketplaceService/internal/pricing"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceUnavailable возвращается, когда услуга снята с публикации
	ErrServiceUnavailable = errors.New("create_booking: service is not available for booking")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// Ошибки применения купона совпадают с ошибками pricing
var (
	ErrCouponNotFound      = pricing.ErrCouponNotFound
	ErrCouponExpired       = pricing.ErrCouponExpired
	ErrCouponUsageExceeded = pricing.ErrCouponUsageExceeded
	ErrBelowMinimum        = pricing.ErrBelowMinimum
)
