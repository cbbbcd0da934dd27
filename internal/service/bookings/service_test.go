package bookings

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/booking"
	vendorRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/vendorprofile"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/bookings/models"
	"github.com/m04kA/SMC-MarketplaceService/pkg/logger"
	"github.com/m04kA/SMC-MarketplaceService/pkg/ptr"
)

type fakeBookings struct {
	items map[int64]*domain.Booking
}

func (f *fakeBookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.items[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookings) List(context.Context, domain.BookingsFilter) ([]*domain.Booking, error) {
	return nil, nil
}

func (f *fakeBookings) UpdateStatus(_ context.Context, id int64, from, to domain.BookingStatus, ps *domain.PaymentStatus) error {
	b, ok := f.items[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Status != from {
		return bookingRepo.ErrStatusChanged
	}
	b.Status = to
	if ps != nil {
		b.PaymentStatus = *ps
	}
	return nil
}

func (f *fakeBookings) UpdatePaymentStatus(_ context.Context, id int64, ps domain.PaymentStatus) error {
	b, ok := f.items[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.PaymentStatus = ps
	return nil
}

func (f *fakeBookings) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeVendors struct {
	byUser   map[int64]*domain.VendorProfile
	earnings map[int64]decimal.Decimal
	counts   map[int64]int
}

func (f *fakeVendors) GetByUserID(_ context.Context, userID int64) (*domain.VendorProfile, error) {
	if v, ok := f.byUser[userID]; ok {
		return v, nil
	}
	return nil, vendorRepo.ErrVendorNotFound
}

func (f *fakeVendors) AddCompletedBooking(_ context.Context, id int64, earning decimal.Decimal) error {
	f.counts[id]++
	f.earnings[id] = f.earnings[id].Add(earning)
	return nil
}

type passThroughTx struct{}

func (passThroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
func (passThroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type countingMetrics map[string]int

func (m countingMetrics) IncBookingStatusChanged(status string) { m[status]++ }

func newFixture() (*Service, *fakeBookings, *fakeVendors, countingMetrics) {
	vendorID := int64(7)
	bookings := &fakeBookings{items: map[int64]*domain.Booking{
		1: {
			ID: 1, UserID: 100, VendorID: &vendorID, Status: domain.StatusPending,
			PaymentMethod: domain.PaymentCash, PaymentStatus: domain.PaymentStatusPending,
			TotalAmount: decimal.RequireFromString("1000"), VendorEarning: decimal.RequireFromString("850"),
		},
		2: {
			ID: 2, UserID: 100, Status: domain.StatusConfirmed,
			PaymentMethod: domain.PaymentOnline, PaymentStatus: domain.PaymentStatusPaid,
		},
	}}
	vendors := &fakeVendors{
		byUser:   map[int64]*domain.VendorProfile{200: {ID: 7, UserID: 200}, 300: {ID: 8, UserID: 300}},
		earnings: map[int64]decimal.Decimal{},
		counts:   map[int64]int{},
	}
	m := countingMetrics{}
	return NewService(bookings, vendors, passThroughTx{}, m, logger.NewNop()), bookings, vendors, m
}

func TestService_VendorCompletesBooking(t *testing.T) {
	s, bookings, vendors, m := newFixture()
	ctx := context.Background()

	_, err := s.VendorUpdateStatus(ctx, 1, 200, &models.UpdateStatusRequest{Status: "completed"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	confirmed, err := s.VendorUpdateStatus(ctx, 1, 200, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", confirmed.Status)

	completed, err := s.VendorUpdateStatus(ctx, 1, 200, &models.UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", completed.Status)
	assert.Equal(t, "paid", completed.PaymentStatus)
	assert.Equal(t, domain.PaymentStatusPaid, bookings.items[1].PaymentStatus)

	assert.Equal(t, 1, vendors.counts[7])
	assert.True(t, vendors.earnings[7].Equal(decimal.RequireFromString("850")))

	// completed терминален, счетчики не начисляются повторно
	_, err = s.AdminUpdateStatus(ctx, 1, &models.UpdateStatusRequest{Status: "completed"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, 1, vendors.counts[7])
	assert.Equal(t, 1, m["completed"])
}

func TestService_VendorUpdateStatus_ForeignBooking(t *testing.T) {
	s, _, _, _ := newFixture()

	_, err := s.VendorUpdateStatus(context.Background(), 1, 300, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = s.VendorUpdateStatus(context.Background(), 1, 999, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrVendorNotFound)

	_, err = s.VendorUpdateStatus(context.Background(), 1, 200, &models.UpdateStatusRequest{Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Cancel(t *testing.T) {
	t.Run("paid booking is refunded", func(t *testing.T) {
		s, bookings, _, _ := newFixture()

		resp, err := s.Cancel(context.Background(), 2, 100)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		assert.Equal(t, "refunded", resp.PaymentStatus)
		assert.Equal(t, domain.StatusCancelled, bookings.items[2].Status)
	})

	t.Run("not the owner", func(t *testing.T) {
		s, _, _, _ := newFixture()

		_, err := s.Cancel(context.Background(), 1, 555)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("already cancelled", func(t *testing.T) {
		s, _, _, _ := newFixture()

		_, err := s.Cancel(context.Background(), 2, 100)
		require.NoError(t, err)
		_, err = s.Cancel(context.Background(), 2, 100)
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("unknown booking", func(t *testing.T) {
		s, _, _, _ := newFixture()

		_, err := s.Cancel(context.Background(), 404, 100)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestService_GetByID_Access(t *testing.T) {
	s, _, _, _ := newFixture()
	ctx := context.Background()

	tests := []struct {
		name    string
		userID  int64
		role    domain.Role
		wantErr error
	}{
		{name: "owner", userID: 100, role: domain.RoleUser},
		{name: "admin", userID: 1, role: domain.RoleAdmin},
		{name: "vendor of the service", userID: 200, role: domain.RoleVendor},
		{name: "other vendor", userID: 300, role: domain.RoleVendor, wantErr: ErrAccessDenied},
		{name: "other user", userID: 101, role: domain.RoleUser, wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := s.GetByID(ctx, 1, tt.userID, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ptr.Ptr(int64(7)), resp.VendorID)
			assert.Equal(t, "1000.00", resp.TotalAmount)
		})
	}
}

func TestService_AdminUpdatePaymentStatus(t *testing.T) {
	s, bookings, _, _ := newFixture()
	ctx := context.Background()

	resp, err := s.AdminUpdatePaymentStatus(ctx, 1, &models.UpdatePaymentStatusRequest{PaymentStatus: "failed"})
	require.NoError(t, err)
	assert.Equal(t, "failed", resp.PaymentStatus)
	assert.Equal(t, domain.PaymentStatusFailed, bookings.items[1].PaymentStatus)

	_, err = s.AdminUpdatePaymentStatus(ctx, 1, &models.UpdatePaymentStatusRequest{PaymentStatus: "lost"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.Cancel(ctx, 2, 100)
	require.NoError(t, err)
	_, err = s.AdminUpdatePaymentStatus(ctx, 2, &models.UpdatePaymentStatusRequest{PaymentStatus: "paid"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}
