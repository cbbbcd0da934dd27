package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/booking"
	vendorRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/vendorprofile"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
// Создание бронирования выполняется в usecase create_booking
type Service struct {
	bookingRepo BookingRepository
	vendorRepo  VendorRepository
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	vendorRepo VendorRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		vendorRepo:  vendorRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// accessCheck проверяет права на бронирование внутри транзакции
type accessCheck func(ctx context.Context, booking *domain.Booking) error

// GetByID получает бронирование по ID
// Доступ: владелец бронирования, вендор услуги или администратор
func (s *Service) GetByID(ctx context.Context, id, userID int64, role domain.Role) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	switch {
	case role == domain.RoleAdmin, booking.UserID == userID:
	case role == domain.RoleVendor:
		if err := s.checkVendorAccess(ctx, booking, userID); err != nil {
			s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
			return nil, ErrAccessDenied
		}
	default:
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// ListUserBookings возвращает историю бронирований пользователя
func (s *Service) ListUserBookings(ctx context.Context, userID int64, status *string) (*models.BookingListResponse, error) {
	s.logger.Info("ListUserBookings: user=%d, status=%v", userID, status)

	filter := domain.BookingsFilter{UserID: &userID}
	if err := applyStatus(&filter, status); err != nil {
		return nil, err
	}

	return s.list(ctx, "ListUserBookings", filter)
}

// ListVendorBookings возвращает бронирования услуг вендора
func (s *Service) ListVendorBookings(ctx context.Context, userID int64, status *string) (*models.BookingListResponse, error) {
	s.logger.Info("ListVendorBookings: user=%d, status=%v", userID, status)

	vendor, err := s.vendorByUser(ctx, "ListVendorBookings", userID)
	if err != nil {
		return nil, err
	}

	filter := domain.BookingsFilter{VendorID: &vendor.ID}
	if err := applyStatus(&filter, status); err != nil {
		return nil, err
	}

	return s.list(ctx, "ListVendorBookings", filter)
}

// ListAll возвращает все бронирования (панель администратора)
func (s *Service) ListAll(ctx context.Context, status *string) (*models.BookingListResponse, error) {
	var filter domain.BookingsFilter
	if err := applyStatus(&filter, status); err != nil {
		return nil, err
	}

	return s.list(ctx, "ListAll", filter)
}

// Cancel отменяет своё бронирование в статусе pending или confirmed
// Оплаченное бронирование переводится в refunded
func (s *Service) Cancel(ctx context.Context, id, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", id, userID)

	ownerOnly := func(_ context.Context, booking *domain.Booking) error {
		if booking.UserID != userID {
			s.logger.Warn("Cancel: user=%d is not the owner of booking id=%d", userID, id)
			return ErrAccessDenied
		}
		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", id, booking.Status)
			return ErrCannotCancel
		}
		return nil
	}

	return s.transition(ctx, "Cancel", id, domain.StatusCancelled, ownerOnly)
}

// VendorUpdateStatus переводит бронирование услуги вендора в новый статус
func (s *Service) VendorUpdateStatus(ctx context.Context, id, userID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("VendorUpdateStatus: booking id=%d to status=%s by user=%d", id, req.Status, userID)

	next, ok := models.ToDomainBookingStatus(req.Status)
	if !ok {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	vendorOnly := func(ctx context.Context, booking *domain.Booking) error {
		return s.checkVendorAccess(ctx, booking, userID)
	}

	return s.transition(ctx, "VendorUpdateStatus", id, next, vendorOnly)
}

// AdminUpdateStatus переводит любое бронирование в новый статус
func (s *Service) AdminUpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("AdminUpdateStatus: booking id=%d to status=%s", id, req.Status)

	next, ok := models.ToDomainBookingStatus(req.Status)
	if !ok {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	return s.transition(ctx, "AdminUpdateStatus", id, next, nil)
}

// AdminUpdatePaymentStatus фиксирует статус оплаты, полученный от платежного шлюза
// Отмененное бронирование можно перевести только в refunded
func (s *Service) AdminUpdatePaymentStatus(ctx context.Context, id int64, req *models.UpdatePaymentStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("AdminUpdatePaymentStatus: booking id=%d to payment status=%s", id, req.PaymentStatus)

	paymentStatus := domain.PaymentStatus(req.PaymentStatus)
	if !paymentStatus.IsValid() {
		return nil, fmt.Errorf("%w: invalid payment status", ErrInvalidInput)
	}

	var result *domain.Booking

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getBooking(ctx, "AdminUpdatePaymentStatus", id)
		if err != nil {
			return err
		}

		if booking.Status == domain.StatusCancelled && paymentStatus != domain.PaymentStatusRefunded {
			return fmt.Errorf("%w: cancelled booking can only be refunded", ErrInvalidTransition)
		}

		if err := s.bookingRepo.UpdatePaymentStatus(ctx, id, paymentStatus); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: AdminUpdatePaymentStatus - repository error: %v", ErrInternal, err)
		}

		booking.PaymentStatus = paymentStatus
		result = booking
		return nil
	})
	if err != nil {
		if isServiceError(err) {
			s.logger.Warn("AdminUpdatePaymentStatus: booking id=%d: %v", id, err)
			return nil, err
		}
		s.logger.Error("AdminUpdatePaymentStatus: transaction failed for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: AdminUpdatePaymentStatus - transaction: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(result), nil
}

// Delete удаляет бронирование (панель администратора)
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting booking id=%d", id)

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}

// transition выполняет переход статуса в одной SERIALIZABLE транзакции:
// блокировка строки, проверка прав и перехода, guarded update,
// при завершении начисление счетчиков вендора
func (s *Service) transition(
	ctx context.Context,
	op string,
	id int64,
	next domain.BookingStatus,
	check accessCheck,
) (*models.BookingResponse, error) {
	var result *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		booking, err := s.getBooking(ctx, op, id)
		if err != nil {
			return err
		}

		if check != nil {
			if err := check(ctx, booking); err != nil {
				return err
			}
		}

		if !booking.CanTransitionTo(next) {
			s.logger.Warn("%s: booking id=%d cannot move %s -> %s", op, id, booking.Status, next)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, next)
		}

		paymentStatus := nextPaymentStatus(booking, next)

		if err := s.bookingRepo.UpdateStatus(ctx, id, booking.Status, next, paymentStatus); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			case errors.Is(err, bookingRepo.ErrStatusChanged):
				s.logger.Warn("%s: booking id=%d status changed concurrently", op, id)
				return fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
			}
			s.logger.Error("%s: failed to update booking id=%d: %v", op, id, err)
			return fmt.Errorf("%w: %s - update status: %v", ErrInternal, op, err)
		}

		if next == domain.StatusCompleted && booking.VendorID != nil {
			if err := s.vendorRepo.AddCompletedBooking(ctx, *booking.VendorID, booking.VendorEarning); err != nil {
				s.logger.Error("%s: failed to update vendor=%d counters: %v", op, *booking.VendorID, err)
				return fmt.Errorf("%w: %s - vendor counters: %v", ErrInternal, op, err)
			}
		}

		booking.Status = next
		if paymentStatus != nil {
			booking.PaymentStatus = *paymentStatus
		}
		result = booking
		return nil
	})
	if err != nil {
		if isServiceError(err) {
			return nil, err
		}
		s.logger.Error("%s: transaction failed for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - transaction: %v", ErrInternal, op, err)
	}

	s.metrics.IncBookingStatusChanged(string(next))
	s.logger.Info("%s: booking id=%d moved to status=%s", op, id, next)
	return models.FromDomainBooking(result), nil
}

// nextPaymentStatus возвращает новый статус оплаты, если он меняется вместе со статусом бронирования
func nextPaymentStatus(booking *domain.Booking, next domain.BookingStatus) *domain.PaymentStatus {
	var ps domain.PaymentStatus

	switch {
	case next == domain.StatusCancelled && booking.PaymentStatus == domain.PaymentStatusPaid:
		ps = domain.PaymentStatusRefunded
	case next == domain.StatusCompleted && booking.PaymentMethod == domain.PaymentCash &&
		booking.PaymentStatus == domain.PaymentStatusPending:
		ps = domain.PaymentStatusPaid
	default:
		return nil
	}

	return &ps
}

func (s *Service) checkVendorAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	vendor, err := s.vendorByUser(ctx, "checkVendorAccess", userID)
	if err != nil {
		return err
	}

	if !booking.BelongsToVendor(vendor.ID) {
		s.logger.Warn("checkVendorAccess: booking id=%d does not belong to vendor=%d", booking.ID, vendor.ID)
		return ErrAccessDenied
	}

	return nil
}

func (s *Service) vendorByUser(ctx context.Context, op string, userID int64) (*domain.VendorProfile, error) {
	vendor, err := s.vendorRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			s.logger.Warn("%s: user=%d has no vendor profile", op, userID)
			return nil, ErrVendorNotFound
		}
		s.logger.Error("%s: failed to get vendor for user=%d: %v", op, userID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return vendor, nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) list(ctx context.Context, op string, filter domain.BookingsFilter) (*models.BookingListResponse, error) {
	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: fetched %d bookings", op, len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

func applyStatus(filter *domain.BookingsFilter, status *string) error {
	if status == nil {
		return nil
	}
	st, ok := models.ToDomainBookingStatus(*status)
	if !ok {
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	filter.Status = &st
	return nil
}

func isServiceError(err error) bool {
	for _, target := range []error{
		ErrBookingNotFound, ErrVendorNotFound, ErrAccessDenied,
		ErrCannotCancel, ErrInvalidTransition, ErrInvalidInput, ErrInternal,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
