package models

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdatePaymentStatusRequest запрос на смену статуса оплаты
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}

// Response модели

// BookingResponse ответ с данными бронирования
// Денежные суммы передаются строками с двумя знаками после запятой
type BookingResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"userId"`
	ServiceID int64  `json:"serviceId"`
	VendorID  *int64 `json:"vendorId,omitempty"`
	CouponID  *int64 `json:"couponId,omitempty"`

	BookingDate     string  `json:"bookingDate"` // "2025-10-15"
	BookingTime     string  `json:"bookingTime"` // "10:00"
	SpecialRequests *string `json:"specialRequests,omitempty"`
	BillingAddress  string  `json:"billingAddress"`

	PaymentMethod string  `json:"paymentMethod"`
	PaymentStatus string  `json:"paymentStatus"`
	PaymentID     *string `json:"paymentId,omitempty"`

	Subtotal       string `json:"subtotal"`
	DiscountAmount string `json:"discountAmount"`
	TotalAmount    string `json:"totalAmount"`
	PlatformFee    string `json:"platformFee"`
	VendorEarning  string `json:"vendorEarning"`

	Status      string `json:"status"`
	ServiceName string `json:"serviceName"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		ServiceID:       b.ServiceID,
		VendorID:        b.VendorID,
		CouponID:        b.CouponID,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		BookingTime:     b.BookingTime.String(),
		SpecialRequests: b.SpecialRequests,
		BillingAddress:  b.BillingAddress,
		PaymentMethod:   string(b.PaymentMethod),
		PaymentStatus:   string(b.PaymentStatus),
		PaymentID:       b.PaymentID,
		Subtotal:        b.Subtotal.StringFixed(domain.MoneyPlaces),
		DiscountAmount:  b.DiscountAmount.StringFixed(domain.MoneyPlaces),
		TotalAmount:     b.TotalAmount.StringFixed(domain.MoneyPlaces),
		PlatformFee:     b.PlatformFee.StringFixed(domain.MoneyPlaces),
		VendorEarning:   b.VendorEarning.StringFixed(domain.MoneyPlaces),
		Status:          string(b.Status),
		ServiceName:     b.ServiceName,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		if bookingResp := FromDomainBooking(b); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в статус бронирования
func ToDomainBookingStatus(status string) (domain.BookingStatus, bool) {
	s := domain.BookingStatus(status)
	return s, s.IsValid()
}
