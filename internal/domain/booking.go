package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// PaymentMethod способ оплаты бронирования
type PaymentMethod string

const (
	PaymentOnline PaymentMethod = "online"
	PaymentCash   PaymentMethod = "cash" // оплата на месте после оказания услуги
)

// PaymentStatus статус оплаты бронирования
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// bookingTransitions допустимые переходы статусов бронирования
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// Booking represents a service booking in the system
type Booking struct {
	ID        int64
	UserID    int64
	ServiceID int64
	VendorID  *int64 // nil для услуг, созданных администратором
	CouponID  *int64

	BookingDate     time.Time
	BookingTime     types.TimeString
	SpecialRequests *string
	BillingAddress  string

	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	PaymentID     *string

	// Денежная разбивка: VendorEarning + PlatformFee == TotalAmount
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	PlatformFee    decimal.Decimal
	VendorEarning  decimal.Decimal

	Status BookingStatus

	// Denormalized data for history
	ServiceName string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValid returns true for known booking statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsValid returns true for known payment methods
func (m PaymentMethod) IsValid() bool {
	return m == PaymentOnline || m == PaymentCash
}

// IsValid returns true for known payment statuses
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// CanTransitionTo returns true if the booking may move to the given status
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[b.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.CanTransitionTo(StatusCancelled)
}

// BelongsToVendor returns true if the booking is attributed to the vendor profile
func (b *Booking) BelongsToVendor(vendorID int64) bool {
	return b.VendorID != nil && *b.VendorID == vendorID
}

// BookingsFilter фильтр для списков бронирований
// Все поля опциональны, nil - без ограничения
type BookingsFilter struct {
	UserID   *int64
	VendorID *int64
	Status   *BookingStatus
}
