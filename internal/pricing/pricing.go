package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

var (
	hundred         = decimal.NewFromInt(100)
	platformFeeRate = decimal.NewFromInt(domain.PlatformFeePercent).Div(hundred)
)

// Breakdown денежная разбивка бронирования
// VendorEarning + PlatformFee == Total, Total >= 0
type Breakdown struct {
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Total         decimal.Decimal
	PlatformFee   decimal.Decimal
	VendorEarning decimal.Decimal
}

// ValidateAmount проверяет сумму заказа
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, amount.String())
	}
	return nil
}

// Evaluate проверяет применимость купона к сумме заказа
// Порядок проверок фиксирован: не найден/неактивен, истек, исчерпан, ниже минимума
func Evaluate(coupon *domain.Coupon, amount decimal.Decimal, now time.Time) error {
	if coupon == nil || !coupon.IsActive {
		return ErrCouponNotFound
	}

	if coupon.IsExpired(now) {
		return fmt.Errorf("%w: expired at %s", ErrCouponExpired, coupon.ExpiresAt.Format(time.RFC3339))
	}

	if coupon.IsExhausted() {
		return fmt.Errorf("%w: used %d of %d", ErrCouponUsageExceeded, coupon.UsedCount, *coupon.UsageLimit)
	}

	if amount.LessThan(coupon.MinAmount) {
		return fmt.Errorf("%w: minimum order amount is %s", ErrBelowMinimum, coupon.MinAmount.StringFixed(domain.MoneyPlaces))
	}

	return nil
}

// Discount вычисляет размер скидки купона для суммы заказа
// percentage: amount * value / 100, но не больше MaxDiscount; flat: value
func Discount(coupon *domain.Coupon, amount decimal.Decimal) decimal.Decimal {
	if coupon == nil {
		return decimal.Zero
	}

	switch coupon.DiscountType {
	case domain.DiscountPercentage:
		discount := round(amount.Mul(coupon.DiscountValue).Div(hundred))
		if coupon.MaxDiscount != nil && discount.GreaterThan(*coupon.MaxDiscount) {
			discount = *coupon.MaxDiscount
		}
		return discount
	case domain.DiscountFlat:
		return coupon.DiscountValue
	default:
		return decimal.Zero
	}
}

// Calculate строит разбивку для суммы заказа и (опционально) купона
// Купон должен быть предварительно проверен через Evaluate
func Calculate(amount decimal.Decimal, coupon *domain.Coupon) Breakdown {
	subtotal := round(amount)
	discount := Discount(coupon, subtotal)

	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	fee := PlatformFee(total)

	return Breakdown{
		Subtotal:      subtotal,
		Discount:      discount,
		Total:         total,
		PlatformFee:   fee,
		VendorEarning: total.Sub(fee),
	}
}

// PlatformFee комиссия платформы с итоговой суммы, округленная до копеек
func PlatformFee(total decimal.Decimal) decimal.Decimal {
	return round(total.Mul(platformFeeRate))
}

func round(d decimal.Decimal) decimal.Decimal {
	return d.Round(domain.MoneyPlaces)
}
