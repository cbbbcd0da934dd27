package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/booking"
	reviewRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/review"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/reviews/models"
)

// Service сервис отзывов на завершенные бронирования
type Service struct {
	reviewRepo  ReviewRepository
	bookingRepo BookingRepository
	serviceRepo RatingRepository
	vendorRepo  RatingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(
	reviewRepo ReviewRepository,
	bookingRepo BookingRepository,
	serviceRepo RatingRepository,
	vendorRepo RatingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		serviceRepo: serviceRepo,
		vendorRepo:  vendorRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Create оставляет отзыв на своё завершенное бронирование
// Отзыв и пересчет рейтингов услуги и вендора выполняются в одной транзакции
func (s *Service) Create(ctx context.Context, bookingID, userID int64, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	s.logger.Info("Create: review for booking id=%d by user=%d, rating=%d", bookingID, userID, req.Rating)

	comment, err := validateReview(req)
	if err != nil {
		s.logger.Warn("Create: validation failed for booking id=%d: %v", bookingID, err)
		return nil, err
	}

	var created *domain.Review

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Create - get booking: %v", ErrInternal, err)
		}

		if booking.UserID != userID {
			return ErrAccessDenied
		}
		if booking.Status != domain.StatusCompleted {
			return ErrBookingNotCompleted
		}

		created, err = s.reviewRepo.Create(ctx, &domain.Review{
			BookingID: booking.ID,
			UserID:    userID,
			ServiceID: booking.ServiceID,
			VendorID:  booking.VendorID,
			Rating:    req.Rating,
			Comment:   comment,
		})
		if err != nil {
			if errors.Is(err, reviewRepo.ErrReviewAlreadyExists) {
				return ErrAlreadyReviewed
			}
			return fmt.Errorf("%w: Create - insert review: %v", ErrInternal, err)
		}

		if err := s.serviceRepo.RecalculateRating(ctx, booking.ServiceID); err != nil {
			return fmt.Errorf("%w: Create - service rating: %v", ErrInternal, err)
		}

		if booking.VendorID != nil {
			if err := s.vendorRepo.RecalculateRating(ctx, *booking.VendorID); err != nil {
				return fmt.Errorf("%w: Create - vendor rating: %v", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrAccessDenied),
			errors.Is(err, ErrBookingNotCompleted), errors.Is(err, ErrAlreadyReviewed):
			s.logger.Warn("Create: review for booking id=%d refused: %v", bookingID, err)
			return nil, err
		case errors.Is(err, ErrInternal):
			s.logger.Error("Create: failed for booking id=%d: %v", bookingID, err)
			return nil, err
		}
		s.logger.Error("Create: transaction failed for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Create - transaction: %v", ErrInternal, err)
	}

	s.logger.Info("Create: review id=%d created for booking id=%d", created.ID, bookingID)
	resp := models.FromDomainReview(created)
	return &resp, nil
}

// ListByService возвращает отзывы об услуге, новые первыми
func (s *Service) ListByService(ctx context.Context, serviceID int64) (*models.ReviewListResponse, error) {
	reviews, err := s.reviewRepo.ListByService(ctx, serviceID)
	if err != nil {
		s.logger.Error("ListByService: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: ListByService - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReviewList(reviews), nil
}

func validateReview(req *models.CreateReviewRequest) (*string, error) {
	if req.Rating < domain.MinReviewRating || req.Rating > domain.MaxReviewRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinReviewRating, domain.MaxReviewRating)
	}

	if req.Comment == nil {
		return nil, nil
	}

	comment := strings.TrimSpace(*req.Comment)
	if utf8.RuneCountInString(comment) > domain.MaxReviewCommentLength {
		return nil, fmt.Errorf("%w: comment must be at most %d characters", ErrInvalidInput, domain.MaxReviewCommentLength)
	}
	if comment == "" {
		return nil, nil
	}

	return &comment, nil
}
