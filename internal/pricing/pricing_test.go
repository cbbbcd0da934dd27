package pricing

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/pkg/ptr"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2))
}

func percentCoupon(value string, maxDiscount *decimal.Decimal) *domain.Coupon {
	return &domain.Coupon{
		ID:            1,
		Code:          "SAVE",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: money(value),
		MinAmount:     decimal.Zero,
		MaxDiscount:   maxDiscount,
		IsActive:      true,
	}
}

func TestCalculate_CappedPercentage(t *testing.T) {
	coupon := percentCoupon("10", ptr.Ptr(money("100")))

	require.NoError(t, Evaluate(coupon, money("1500"), now))
	b := Calculate(money("1500"), coupon)

	assertMoney(t, "1500.00", b.Subtotal)
	assertMoney(t, "100.00", b.Discount)
	assertMoney(t, "1400.00", b.Total)
	assertMoney(t, "210.00", b.PlatformFee)
	assertMoney(t, "1190.00", b.VendorEarning)
}

func TestCalculate_WithoutCoupon(t *testing.T) {
	b := Calculate(money("999.99"), nil)

	assertMoney(t, "0.00", b.Discount)
	assertMoney(t, "999.99", b.Total)
	assertMoney(t, "150.00", b.PlatformFee)
	assertMoney(t, "849.99", b.VendorEarning)
}

func TestCalculate_FlatLargerThanAmount(t *testing.T) {
	coupon := &domain.Coupon{
		DiscountType:  domain.DiscountFlat,
		DiscountValue: money("500"),
		IsActive:      true,
	}

	b := Calculate(money("300"), coupon)

	assertMoney(t, "500.00", b.Discount)
	assertMoney(t, "0.00", b.Total)
	assertMoney(t, "0.00", b.PlatformFee)
	assertMoney(t, "0.00", b.VendorEarning)
}

func TestCalculate_UncappedPercentage(t *testing.T) {
	b := Calculate(money("1234.56"), percentCoupon("12.5", nil))

	// 1234.56 * 12.5 / 100 = 154.32
	assertMoney(t, "154.32", b.Discount)
	assertMoney(t, "1080.24", b.Total)
	// 1080.24 * 0.15 = 162.036
	assertMoney(t, "162.04", b.PlatformFee)
	assertMoney(t, "918.20", b.VendorEarning)
}

func TestEvaluate(t *testing.T) {
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name    string
		coupon  *domain.Coupon
		amount  string
		wantErr error
	}{
		{
			name:    "absent coupon",
			coupon:  nil,
			amount:  "100",
			wantErr: ErrCouponNotFound,
		},
		{
			name:    "inactive coupon",
			coupon:  &domain.Coupon{IsActive: false},
			amount:  "100",
			wantErr: ErrCouponNotFound,
		},
		{
			name:    "expired coupon",
			coupon:  &domain.Coupon{IsActive: true, ExpiresAt: &past},
			amount:  "100",
			wantErr: ErrCouponExpired,
		},
		{
			name:    "usage exhausted",
			coupon:  &domain.Coupon{IsActive: true, UsageLimit: ptr.Ptr(5), UsedCount: 5},
			amount:  "100",
			wantErr: ErrCouponUsageExceeded,
		},
		{
			name:    "below minimum",
			coupon:  &domain.Coupon{IsActive: true, MinAmount: money("500")},
			amount:  "300",
			wantErr: ErrBelowMinimum,
		},
		{
			name:    "expired wins over exhausted and minimum",
			coupon:  &domain.Coupon{IsActive: true, ExpiresAt: &past, UsageLimit: ptr.Ptr(1), UsedCount: 1, MinAmount: money("500")},
			amount:  "300",
			wantErr: ErrCouponExpired,
		},
		{
			name:    "exhausted wins over minimum",
			coupon:  &domain.Coupon{IsActive: true, ExpiresAt: &future, UsageLimit: ptr.Ptr(1), UsedCount: 1, MinAmount: money("500")},
			amount:  "300",
			wantErr: ErrCouponUsageExceeded,
		},
		{
			name:    "valid at exact minimum",
			coupon:  &domain.Coupon{IsActive: true, ExpiresAt: &future, UsageLimit: ptr.Ptr(2), UsedCount: 1, MinAmount: money("500")},
			amount:  "500",
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Evaluate(tt.coupon, money(tt.amount), now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRejectionReason(t *testing.T) {
	assert.Equal(t, "below_minimum", RejectionReason(Evaluate(&domain.Coupon{IsActive: true, MinAmount: money("10")}, money("1"), now)))
	assert.Equal(t, "not_found", RejectionReason(ErrCouponNotFound))
	assert.Equal(t, "other", RejectionReason(ErrInvalidAmount))
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(decimal.Zero))
	assert.ErrorIs(t, ValidateAmount(money("-0.01")), ErrInvalidAmount)
}

func TestCalculate_Properties(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		amount := decimal.New(rnd.Int63n(10_000_000), -2) // 0.00 .. 99999.99

		var coupon *domain.Coupon
		switch rnd.Intn(3) {
		case 0:
			var maxDiscount *decimal.Decimal
			if rnd.Intn(2) == 0 {
				maxDiscount = ptr.Ptr(decimal.New(rnd.Int63n(100_000), -2))
			}
			coupon = percentCoupon(decimal.NewFromInt(rnd.Int63n(100)+1).String(), maxDiscount)
		case 1:
			coupon = &domain.Coupon{
				DiscountType:  domain.DiscountFlat,
				DiscountValue: decimal.New(rnd.Int63n(20_000_000), -2),
				IsActive:      true,
			}
		}

		b := Calculate(amount, coupon)

		require.False(t, b.Total.IsNegative(), "total must not be negative: %s", amount)
		require.True(t, b.VendorEarning.Add(b.PlatformFee).Equal(b.Total),
			"earning %s + fee %s != total %s", b.VendorEarning, b.PlatformFee, b.Total)
		require.True(t, b.PlatformFee.Equal(b.PlatformFee.Round(2)), "fee %s is not rounded to cents", b.PlatformFee)

		if coupon != nil && coupon.DiscountType == domain.DiscountPercentage && coupon.MaxDiscount != nil {
			require.True(t, b.Discount.LessThanOrEqual(*coupon.MaxDiscount),
				"discount %s exceeds cap %s", b.Discount, *coupon.MaxDiscount)
		}
	}
}
