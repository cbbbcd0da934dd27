package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType тип скидки купона
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFlat       DiscountType = "flat"
)

// IsValid returns true for known discount types
func (t DiscountType) IsValid() bool {
	return t == DiscountPercentage || t == DiscountFlat
}

// Coupon represents a discount code with validity and usage constraints
type Coupon struct {
	ID            int64
	Code          string // хранится в верхнем регистре
	Description   *string
	DiscountType  DiscountType
	DiscountValue decimal.Decimal
	MinAmount     decimal.Decimal
	MaxDiscount   *decimal.Decimal // только для percentage, nil - без ограничения
	UsageLimit    *int             // nil - без ограничения
	UsedCount     int
	IsActive      bool
	ExpiresAt     *time.Time // nil - бессрочный
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NormalizeCouponCode приводит код к каноническому виду (без пробелов, верхний регистр)
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsExpired returns true if now is past the expiry moment
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// IsExhausted returns true if the usage limit is set and reached
func (c *Coupon) IsExhausted() bool {
	return c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit
}
