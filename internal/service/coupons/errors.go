package coupons

import (
	"errors"

	"github.com/m04kA/SMC-MarketplaceService/internal/pricing"
)

var (
	// ErrCouponNotFound возвращается, когда купон не существует или неактивен
	ErrCouponNotFound = pricing.ErrCouponNotFound

	// ErrCouponExpired возвращается, когда срок действия купона истек
	ErrCouponExpired = pricing.ErrCouponExpired

	// ErrCouponUsageExceeded возвращается, когда лимит использований исчерпан
	ErrCouponUsageExceeded = pricing.ErrCouponUsageExceeded

	// ErrBelowMinimum возвращается, когда сумма заказа меньше минимальной
	ErrBelowMinimum = pricing.ErrBelowMinimum

	// ErrCodeAlreadyExists возвращается при дублировании кода купона
	ErrCodeAlreadyExists = errors.New("coupon code already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
