package coupons

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	couponRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/coupon"
	"github.com/m04kA/SMC-MarketplaceService/internal/pricing"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/coupons/models"
)

var hundred = decimal.NewFromInt(100)

// Service сервис управления купонами и проверки купонов
type Service struct {
	couponRepo   CouponRepository
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса купонов
func NewService(couponRepo CouponRepository, metrics Metrics, logger Logger) *Service {
	return &Service{
		couponRepo:   couponRepo,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Quote проверяет купон для суммы заказа и возвращает разбивку без записи в БД
func (s *Service) Quote(ctx context.Context, req *models.QuoteRequest) (*models.QuoteResponse, error) {
	code := domain.NormalizeCouponCode(req.Code)
	s.logger.Info("Quote: code=%s, amount=%s", code, req.Amount.String())

	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if err := pricing.ValidateAmount(req.Amount); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil && !errors.Is(err, couponRepo.ErrCouponNotFound) {
		s.logger.Error("Quote: repository error for code=%s: %v", code, err)
		return nil, fmt.Errorf("%w: Quote - repository error: %v", ErrInternal, err)
	}

	// Отсутствующий купон проверяется в Evaluate наравне с неактивным
	if err := pricing.Evaluate(coupon, req.Amount, s.timeProvider.Now()); err != nil {
		s.logger.Warn("Quote: coupon %s rejected: %v", code, err)
		s.metrics.IncCouponRejected(pricing.RejectionReason(err))
		return nil, err
	}

	breakdown := pricing.Calculate(req.Amount, coupon)

	s.logger.Info("Quote: coupon %s accepted, discount=%s, total=%s", code, breakdown.Discount, breakdown.Total)
	return models.FromBreakdown(coupon, breakdown), nil
}

// List возвращает все купоны (панель администратора)
func (s *Service) List(ctx context.Context) (*models.CouponListResponse, error) {
	coupons, err := s.couponRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCouponList(coupons), nil
}

// Create создает купон
func (s *Service) Create(ctx context.Context, req *models.CouponRequest) (*models.CouponResponse, error) {
	coupon := req.ToDomain()
	s.logger.Info("Create: creating coupon code=%s, type=%s", coupon.Code, coupon.DiscountType)

	if err := validateCoupon(coupon); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.couponRepo.Create(ctx, coupon)
	if err != nil {
		if errors.Is(err, couponRepo.ErrCodeAlreadyExists) {
			s.logger.Warn("Create: coupon code=%s already exists", coupon.Code)
			return nil, ErrCodeAlreadyExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created coupon id=%d", created.ID)
	return models.FromDomainCoupon(created), nil
}

// Update полностью обновляет условия купона (счетчик использований сохраняется)
func (s *Service) Update(ctx context.Context, id int64, req *models.CouponRequest) (*models.CouponResponse, error) {
	coupon := req.ToDomain()
	s.logger.Info("Update: updating coupon id=%d", id)

	if err := validateCoupon(coupon); err != nil {
		s.logger.Warn("Update: validation failed for coupon id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.couponRepo.Update(ctx, id, coupon)
	if err != nil {
		switch {
		case errors.Is(err, couponRepo.ErrCouponNotFound):
			s.logger.Warn("Update: coupon id=%d not found", id)
			return nil, ErrCouponNotFound
		case errors.Is(err, couponRepo.ErrCodeAlreadyExists):
			s.logger.Warn("Update: coupon code=%s already exists", coupon.Code)
			return nil, ErrCodeAlreadyExists
		case errors.Is(err, couponRepo.ErrUsageLimitBelowUsed):
			s.logger.Warn("Update: usage limit of coupon id=%d is below used count", id)
			return nil, fmt.Errorf("%w: usageLimit must not be below usedCount", ErrInvalidInput)
		}
		s.logger.Error("Update: repository error for coupon id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated coupon id=%d", id)
	return models.FromDomainCoupon(updated), nil
}

// Delete удаляет купон, бронирования сохраняют разбивку (coupon_id обнуляется)
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting coupon id=%d", id)

	if err := s.couponRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			s.logger.Warn("Delete: coupon id=%d not found", id)
			return ErrCouponNotFound
		}
		s.logger.Error("Delete: repository error for coupon id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted coupon id=%d", id)
	return nil
}

// validateCoupon проверяет условия купона
func validateCoupon(c *domain.Coupon) error {
	if c.Code == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if len(c.Code) > domain.MaxCouponCodeLength {
		return fmt.Errorf("%w: code must be at most %d characters", ErrInvalidInput, domain.MaxCouponCodeLength)
	}
	if !c.DiscountType.IsValid() {
		return fmt.Errorf("%w: discountType must be percentage or flat", ErrInvalidInput)
	}
	if !c.DiscountValue.IsPositive() {
		return fmt.Errorf("%w: discountValue must be positive", ErrInvalidInput)
	}
	if c.DiscountType == domain.DiscountPercentage && c.DiscountValue.GreaterThan(hundred) {
		return fmt.Errorf("%w: percentage discount must not exceed 100", ErrInvalidInput)
	}
	if c.MinAmount.IsNegative() {
		return fmt.Errorf("%w: minAmount must not be negative", ErrInvalidInput)
	}
	if c.MaxDiscount != nil && !c.MaxDiscount.IsPositive() {
		return fmt.Errorf("%w: maxDiscount must be positive", ErrInvalidInput)
	}
	if c.UsageLimit != nil && *c.UsageLimit <= 0 {
		return fmt.Errorf("%w: usageLimit must be positive", ErrInvalidInput)
	}
	return nil
}
