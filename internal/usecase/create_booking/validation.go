package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
	}

	if strings.TrimSpace(req.BillingAddress) == "" {
		return fmt.Errorf("%w: billingAddress is required", ErrInvalidInput)
	}

	if req.SpecialRequests != nil && utf8.RuneCountInString(*req.SpecialRequests) > domain.MaxSpecialRequestsLength {
		return fmt.Errorf("%w: specialRequests must be at most %d characters", ErrInvalidInput, domain.MaxSpecialRequestsLength)
	}

	if !domain.PaymentMethod(req.PaymentMethod).IsValid() {
		return fmt.Errorf("%w: paymentMethod must be online or cash", ErrInvalidInput)
	}

	if req.CouponCode != nil && len(domain.NormalizeCouponCode(*req.CouponCode)) > domain.MaxCouponCodeLength {
		return fmt.Errorf("%w: coupon code is too long", ErrInvalidInput)
	}

	return nil
}

// couponCode возвращает нормализованный код купона или nil, если купон не указан
func couponCode(req *Request) *string {
	if req.CouponCode == nil {
		return nil
	}
	code := domain.NormalizeCouponCode(*req.CouponCode)
	if code == "" {
		return nil
	}
	return &code
}

// isStartInPast проверяет, что начало бронирования (дата + время) уже прошло
func isStartInPast(date time.Time, tm types.TimeString, now time.Time) bool {
	return tm.On(date).Before(now)
}
