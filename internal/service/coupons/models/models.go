package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/internal/pricing"
)

// Request модели

// CouponRequest запрос на создание или полное обновление купона
type CouponRequest struct {
	Code          string           `json:"code"`
	Description   *string          `json:"description,omitempty"`
	DiscountType  string           `json:"discountType"`
	DiscountValue decimal.Decimal  `json:"discountValue"`
	MinAmount     *decimal.Decimal `json:"minAmount,omitempty"`
	MaxDiscount   *decimal.Decimal `json:"maxDiscount,omitempty"`
	UsageLimit    *int             `json:"usageLimit,omitempty"`
	IsActive      *bool            `json:"isActive,omitempty"` // по умолчанию true
	ExpiresAt     *time.Time       `json:"expiresAt,omitempty"`
}

// ToDomain конвертирует запрос в domain модель (код нормализуется)
func (r *CouponRequest) ToDomain() *domain.Coupon {
	coupon := &domain.Coupon{
		Code:          domain.NormalizeCouponCode(r.Code),
		Description:   r.Description,
		DiscountType:  domain.DiscountType(r.DiscountType),
		DiscountValue: r.DiscountValue,
		MinAmount:     decimal.Zero,
		UsageLimit:    r.UsageLimit,
		IsActive:      true,
		ExpiresAt:     r.ExpiresAt,
	}

	if r.MinAmount != nil {
		coupon.MinAmount = *r.MinAmount
	}
	// Ограничение скидки имеет смысл только для процентных купонов
	if coupon.DiscountType == domain.DiscountPercentage {
		coupon.MaxDiscount = r.MaxDiscount
	}
	if r.IsActive != nil {
		coupon.IsActive = *r.IsActive
	}

	return coupon
}

// QuoteRequest запрос на проверку купона для суммы заказа
type QuoteRequest struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}

// Response модели

// CouponResponse ответ с данными купона
type CouponResponse struct {
	ID            int64      `json:"id"`
	Code          string     `json:"code"`
	Description   *string    `json:"description,omitempty"`
	DiscountType  string     `json:"discountType"`
	DiscountValue string     `json:"discountValue"`
	MinAmount     string     `json:"minAmount"`
	MaxDiscount   *string    `json:"maxDiscount,omitempty"`
	UsageLimit    *int       `json:"usageLimit,omitempty"`
	UsedCount     int        `json:"usedCount"`
	IsActive      bool       `json:"isActive"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// CouponListResponse ответ со списком купонов
type CouponListResponse struct {
	Coupons []CouponResponse `json:"coupons"`
}

// QuoteResponse денежная разбивка заказа с примененным купоном
type QuoteResponse struct {
	CouponID      int64  `json:"couponId"`
	Code          string `json:"code"`
	DiscountType  string `json:"discountType"`
	Subtotal      string `json:"subtotal"`
	Discount      string `json:"discount"`
	Total         string `json:"total"`
	PlatformFee   string `json:"platformFee"`
	VendorEarning string `json:"vendorEarning"`
}

// Методы конвертации

// FromDomainCoupon конвертирует domain модель в DTO
func FromDomainCoupon(c *domain.Coupon) *CouponResponse {
	if c == nil {
		return nil
	}

	resp := &CouponResponse{
		ID:            c.ID,
		Code:          c.Code,
		Description:   c.Description,
		DiscountType:  string(c.DiscountType),
		DiscountValue: money(c.DiscountValue),
		MinAmount:     money(c.MinAmount),
		UsageLimit:    c.UsageLimit,
		UsedCount:     c.UsedCount,
		IsActive:      c.IsActive,
		ExpiresAt:     c.ExpiresAt,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}

	if c.MaxDiscount != nil {
		maxDiscount := money(*c.MaxDiscount)
		resp.MaxDiscount = &maxDiscount
	}

	return resp
}

// FromDomainCouponList конвертирует список domain моделей в DTO
func FromDomainCouponList(coupons []*domain.Coupon) *CouponListResponse {
	resp := &CouponListResponse{
		Coupons: make([]CouponResponse, 0, len(coupons)),
	}

	for _, c := range coupons {
		if couponResp := FromDomainCoupon(c); couponResp != nil {
			resp.Coupons = append(resp.Coupons, *couponResp)
		}
	}

	return resp
}

// FromBreakdown конвертирует разбивку в DTO
func FromBreakdown(c *domain.Coupon, b pricing.Breakdown) *QuoteResponse {
	return &QuoteResponse{
		CouponID:      c.ID,
		Code:          c.Code,
		DiscountType:  string(c.DiscountType),
		Subtotal:      money(b.Subtotal),
		Discount:      money(b.Discount),
		Total:         money(b.Total),
		PlatformFee:   money(b.PlatformFee),
		VendorEarning: money(b.VendorEarning),
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(domain.MoneyPlaces)
}
