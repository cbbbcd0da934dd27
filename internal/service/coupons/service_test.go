package coupons

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	couponRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/coupon"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/coupons/models"
	"github.com/m04kA/SMC-MarketplaceService/pkg/logger"
	"github.com/m04kA/SMC-MarketplaceService/pkg/ptr"
)

type fakeRepo struct {
	byCode    map[string]*domain.Coupon
	created   *domain.Coupon
	updateErr error
}

func (f *fakeRepo) Create(_ context.Context, c *domain.Coupon) (*domain.Coupon, error) {
	if _, ok := f.byCode[c.Code]; ok {
		return nil, couponRepo.ErrCodeAlreadyExists
	}
	c.ID = 42
	f.created = c
	return c, nil
}

func (f *fakeRepo) GetByID(context.Context, int64) (*domain.Coupon, error) {
	return nil, couponRepo.ErrCouponNotFound
}

func (f *fakeRepo) GetByCode(_ context.Context, code string) (*domain.Coupon, error) {
	if c, ok := f.byCode[code]; ok {
		return c, nil
	}
	return nil, couponRepo.ErrCouponNotFound
}

func (f *fakeRepo) List(context.Context) ([]*domain.Coupon, error) { return nil, nil }

func (f *fakeRepo) Update(_ context.Context, id int64, c *domain.Coupon) (*domain.Coupon, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	c.ID = id
	return c, nil
}

func (f *fakeRepo) Delete(context.Context, int64) error { return couponRepo.ErrCouponNotFound }

type fakeMetrics struct {
	rejected []string
}

func (m *fakeMetrics) IncCouponRejected(reason string) { m.rejected = append(m.rejected, reason) }

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

func newService(repo *fakeRepo) (*Service, *fakeMetrics) {
	m := &fakeMetrics{}
	s := NewService(repo, m, logger.NewNop())
	s.timeProvider = fixedTime{t: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}
	return s, m
}

func TestService_Quote(t *testing.T) {
	repo := &fakeRepo{byCode: map[string]*domain.Coupon{
		"SAVE10": {
			ID:            1,
			Code:          "SAVE10",
			DiscountType:  domain.DiscountPercentage,
			DiscountValue: decimal.NewFromInt(10),
			MaxDiscount:   ptr.Ptr(decimal.NewFromInt(100)),
			IsActive:      true,
		},
		"MIN500": {
			ID:            2,
			Code:          "MIN500",
			DiscountType:  domain.DiscountFlat,
			DiscountValue: decimal.NewFromInt(50),
			MinAmount:     decimal.NewFromInt(500),
			IsActive:      true,
		},
	}}

	t.Run("case-insensitive code and capped discount", func(t *testing.T) {
		s, _ := newService(repo)

		resp, err := s.Quote(context.Background(), &models.QuoteRequest{Code: "  save10 ", Amount: decimal.NewFromInt(1500)})
		require.NoError(t, err)

		assert.Equal(t, "100.00", resp.Discount)
		assert.Equal(t, "1400.00", resp.Total)
		assert.Equal(t, "210.00", resp.PlatformFee)
		assert.Equal(t, "1190.00", resp.VendorEarning)
	})

	t.Run("below minimum is counted as rejection", func(t *testing.T) {
		s, m := newService(repo)

		_, err := s.Quote(context.Background(), &models.QuoteRequest{Code: "MIN500", Amount: decimal.NewFromInt(300)})
		assert.ErrorIs(t, err, ErrBelowMinimum)
		assert.Equal(t, []string{"below_minimum"}, m.rejected)
	})

	t.Run("unknown code", func(t *testing.T) {
		s, m := newService(repo)

		_, err := s.Quote(context.Background(), &models.QuoteRequest{Code: "NOPE", Amount: decimal.NewFromInt(300)})
		assert.ErrorIs(t, err, ErrCouponNotFound)
		assert.Equal(t, []string{"not_found"}, m.rejected)
	})

	t.Run("negative amount", func(t *testing.T) {
		s, _ := newService(repo)

		_, err := s.Quote(context.Background(), &models.QuoteRequest{Code: "SAVE10", Amount: decimal.NewFromInt(-1)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CouponRequest
		wantErr error
	}{
		{
			name:    "percentage over 100",
			req:     models.CouponRequest{Code: "BIG", DiscountType: "percentage", DiscountValue: decimal.NewFromInt(150)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown type",
			req:     models.CouponRequest{Code: "BIG", DiscountType: "bogo", DiscountValue: decimal.NewFromInt(1)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "zero value",
			req:     models.CouponRequest{Code: "ZERO", DiscountType: "flat", DiscountValue: decimal.Zero},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "duplicate code",
			req:     models.CouponRequest{Code: "taken", DiscountType: "flat", DiscountValue: decimal.NewFromInt(10)},
			wantErr: ErrCodeAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newService(&fakeRepo{byCode: map[string]*domain.Coupon{"TAKEN": {}}})

			_, err := s.Create(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("normalizes code and drops cap for flat coupons", func(t *testing.T) {
		repo := &fakeRepo{byCode: map[string]*domain.Coupon{}}
		s, _ := newService(repo)

		resp, err := s.Create(context.Background(), &models.CouponRequest{
			Code:          " flat50 ",
			DiscountType:  "flat",
			DiscountValue: decimal.NewFromInt(50),
			MaxDiscount:   ptr.Ptr(decimal.NewFromInt(10)),
		})
		require.NoError(t, err)

		assert.Equal(t, "FLAT50", resp.Code)
		assert.True(t, resp.IsActive)
		assert.Nil(t, repo.created.MaxDiscount)
	})
}

func TestService_Update(t *testing.T) {
	req := func() *models.CouponRequest {
		return &models.CouponRequest{
			Code:          "save10",
			DiscountType:  "percentage",
			DiscountValue: decimal.NewFromInt(10),
			UsageLimit:    ptr.Ptr(3),
		}
	}

	t.Run("updated", func(t *testing.T) {
		s, _ := newService(&fakeRepo{})

		updated, err := s.Update(context.Background(), 5, req())
		require.NoError(t, err)
		assert.Equal(t, int64(5), updated.ID)
		assert.Equal(t, "SAVE10", updated.Code)
	})

	t.Run("limit below used count", func(t *testing.T) {
		s, _ := newService(&fakeRepo{updateErr: couponRepo.ErrUsageLimitBelowUsed})

		_, err := s.Update(context.Background(), 5, req())
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("not found", func(t *testing.T) {
		s, _ := newService(&fakeRepo{updateErr: couponRepo.ErrCouponNotFound})

		_, err := s.Update(context.Background(), 5, req())
		assert.ErrorIs(t, err, ErrCouponNotFound)
	})
}
