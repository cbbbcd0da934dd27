package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	couponRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/coupon"
	servicesRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/services"
	"github.com/m04kA/SMC-MarketplaceService/internal/pricing"
)

// UseCase use case оформления бронирования (checkout)
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	couponRepo   CouponRepository
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	couponRepo CouponRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		couponRepo:   couponRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case оформления бронирования
// Проверка купона, создание бронирования и инкремент used_count идут в одной
// сериализуемой транзакции: при исчерпании лимита бронирование не создается
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, service=%d, date=%s, time=%s, payment=%s",
		req.UserID, req.ServiceID, req.Date.Format(domain.DateFormat), req.Time, req.PaymentMethod)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	if isStartInPast(req.Date, req.Time, now) {
		uc.logger.Warn("CreateBooking: start %s %s is in the past", req.Date.Format(domain.DateFormat), req.Time)
		return nil, ErrInvalidDate
	}

	code := couponCode(req)

	var (
		result *domain.Booking
		coupon *domain.Coupon
	)

	// 3. Выполняем операции с БД в одной транзакции
	// Строка купона блокируется FOR UPDATE, конкурентный checkout ждет коммита и видит новый used_count
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем услугу
		service, err := uc.serviceRepo.GetByID(txCtx, req.ServiceID)
		if err != nil {
			if errors.Is(err, servicesRepo.ErrServiceNotFound) {
				return ErrServiceNotFound
			}
			return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		if !service.IsBookable() {
			return ErrServiceUnavailable
		}

		// 3.2. Получаем купон с блокировкой строки и проверяем применимость
		coupon = nil
		if code != nil {
			coupon, err = uc.couponRepo.GetByCode(txCtx, *code)
			if err != nil {
				if errors.Is(err, couponRepo.ErrCouponNotFound) {
					return ErrCouponNotFound
				}
				return fmt.Errorf("%w: failed to get coupon: %v", ErrInternal, err)
			}

			if err := pricing.Evaluate(coupon, service.Price, now); err != nil {
				return err
			}
		}

		// 3.3. Считаем денежную разбивку
		breakdown := pricing.Calculate(service.Price, coupon)

		booking := &domain.Booking{
			UserID:          req.UserID,
			ServiceID:       service.ID,
			VendorID:        service.VendorID,
			BookingDate:     req.Date,
			BookingTime:     req.Time,
			SpecialRequests: req.SpecialRequests,
			BillingAddress:  strings.TrimSpace(req.BillingAddress),
			PaymentMethod:   domain.PaymentMethod(req.PaymentMethod),
			PaymentStatus:   domain.PaymentStatusPending,
			Subtotal:        breakdown.Subtotal,
			DiscountAmount:  breakdown.Discount,
			TotalAmount:     breakdown.Total,
			PlatformFee:     breakdown.PlatformFee,
			VendorEarning:   breakdown.VendorEarning,
			Status:          domain.StatusPending,
			// Денормализация данных услуги
			ServiceName: service.Name,
		}
		if coupon != nil {
			booking.CouponID = &coupon.ID
		}

		// 3.4. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 3.5. Условный инкремент used_count, ноль строк - лимит исчерпан
		if coupon != nil {
			if err := uc.couponRepo.IncrementUsage(txCtx, coupon.ID); err != nil {
				if errors.Is(err, couponRepo.ErrUsageLimitReached) {
					return fmt.Errorf("%w: limit reached concurrently", ErrCouponUsageExceeded)
				}
				return fmt.Errorf("%w: failed to redeem coupon: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.mapError(err)
	}

	uc.metrics.IncBookingCreated(string(result.PaymentMethod), coupon != nil)
	if coupon != nil {
		uc.metrics.IncCouponRedeemed(string(coupon.DiscountType))
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%s",
		result.ID, result.TotalAmount.StringFixed(domain.MoneyPlaces))

	return &Response{Booking: result, CouponCode: code}, nil
}

// mapError логирует ошибку транзакции и приводит её к ошибкам usecase
func (uc *UseCase) mapError(err error) error {
	switch {
	case errors.Is(err, ErrCouponNotFound), errors.Is(err, ErrCouponExpired),
		errors.Is(err, ErrCouponUsageExceeded), errors.Is(err, ErrBelowMinimum):
		reason := pricing.RejectionReason(err)
		uc.metrics.IncCouponRejected(reason)
		uc.logger.Warn("CreateBooking: coupon rejected, reason=%s: %v", reason, err)
		return err
	case errors.Is(err, ErrServiceNotFound), errors.Is(err, ErrServiceUnavailable):
		uc.logger.Warn("CreateBooking: %v", err)
		return err
	case errors.Is(err, ErrInternal):
		uc.logger.Error("CreateBooking: %v", err)
		return err
	}

	uc.logger.Error("CreateBooking: transaction failed: %v", err)
	return fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
}
