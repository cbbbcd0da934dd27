package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBooking_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to completed", StatusPending, StatusCompleted, false},
		{"confirmed to completed", StatusConfirmed, StatusCompleted, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed to pending", StatusConfirmed, StatusPending, false},
		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.from}
			assert.Equal(t, tt.want, b.CanTransitionTo(tt.to))
		})
	}
}

func TestBooking_BelongsToVendor(t *testing.T) {
	vendorID := int64(5)

	assert.True(t, (&Booking{VendorID: &vendorID}).BelongsToVendor(5))
	assert.False(t, (&Booking{VendorID: &vendorID}).BelongsToVendor(6))
	assert.False(t, (&Booking{}).BelongsToVendor(5))
}

func TestStatusValidation(t *testing.T) {
	assert.True(t, StatusCompleted.IsValid())
	assert.False(t, BookingStatus("in_progress").IsValid())
	assert.True(t, PaymentCash.IsValid())
	assert.False(t, PaymentMethod("razorpay").IsValid())
	assert.True(t, PaymentStatusRefunded.IsValid())
	assert.False(t, Role("manager").IsValid())
}
