package create_booking

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-MarketplaceService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID       int64   `json:"serviceId"`
	BookingDate     string  `json:"bookingDate"` // "2025-10-15"
	BookingTime     string  `json:"bookingTime"` // "10:00"
	SpecialRequests *string `json:"specialRequests,omitempty"`
	BillingAddress  string  `json:"billingAddress"`
	PaymentMethod   string  `json:"paymentMethod"` // online | cash
	CouponCode      *string `json:"couponCode,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	*models.BookingResponse
	CouponCode *string `json:"couponCode,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, errInvalidDate
	}

	bookingTime, err := types.NewTimeStringFromString(r.BookingTime)
	if err != nil {
		return nil, errInvalidTime
	}

	return &createBooking.Request{
		UserID:          userID,
		ServiceID:       r.ServiceID,
		Date:            bookingDate,
		Time:            bookingTime,
		SpecialRequests: r.SpecialRequests,
		BillingAddress:  r.BillingAddress,
		PaymentMethod:   r.PaymentMethod,
		CouponCode:      r.CouponCode,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		BookingResponse: models.FromDomainBooking(resp.Booking),
		CouponCode:      resp.CouponCode,
	}
}
