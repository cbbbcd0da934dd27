package pricing

import "errors"

var (
	// ErrCouponNotFound возвращается, когда купон не существует или неактивен
	ErrCouponNotFound = errors.New("pricing: coupon not found")

	// ErrCouponExpired возвращается, когда срок действия купона истек
	ErrCouponExpired = errors.New("pricing: coupon expired")

	// ErrCouponUsageExceeded возвращается, когда лимит использований купона исчерпан
	ErrCouponUsageExceeded = errors.New("pricing: coupon usage limit exceeded")

	// ErrBelowMinimum возвращается, когда сумма заказа меньше минимальной для купона
	ErrBelowMinimum = errors.New("pricing: order amount below coupon minimum")

	// ErrInvalidAmount возвращается для отрицательной суммы заказа
	ErrInvalidAmount = errors.New("pricing: invalid order amount")
)

// RejectionReason короткое имя причины отказа для метрик и логов
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrCouponNotFound):
		return "not_found"
	case errors.Is(err, ErrCouponExpired):
		return "expired"
	case errors.Is(err, ErrCouponUsageExceeded):
		return "usage_exceeded"
	case errors.Is(err, ErrBelowMinimum):
		return "below_minimum"
	default:
		return "other"
	}
}
