package vendorapplications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	appRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/vendorapplication"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/vendorapplications/models"
)

// Service сервис заявок на роль вендора
// Одобрение заявки выполняется в usecase approve_vendor_application
type Service struct {
	appRepo      ApplicationRepository
	roles        RoleResolver
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(appRepo ApplicationRepository, roles RoleResolver, metrics Metrics, logger Logger) *Service {
	return &Service{
		appRepo:      appRepo,
		roles:        roles,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Submit создает заявку в статусе pending
// Отказ, если пользователь уже вендор/админ или у него есть pending/approved заявка
func (s *Service) Submit(ctx context.Context, userID int64, req *models.SubmitApplicationRequest) (*models.ApplicationResponse, error) {
	s.logger.Info("Submit: user=%d, business=%s", userID, req.BusinessName)

	// 1. Валидация входных данных
	if err := validateSubmit(req); err != nil {
		s.logger.Warn("Submit: validation failed for user=%d: %v", userID, err)
		return nil, err
	}

	// 2. Проверяем роль пользователя
	role, err := s.roles.GetRole(ctx, userID)
	if err != nil {
		s.logger.Error("Submit: failed to resolve role for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Submit - resolve role: %v", ErrInternal, err)
	}
	if role != domain.RoleUser {
		s.logger.Warn("Submit: user=%d already has role=%s", userID, role)
		return nil, ErrAlreadyVendor
	}

	// 3. Проверяем отсутствие открытой заявки
	open, err := s.appRepo.HasOpenApplication(ctx, userID)
	if err != nil {
		s.logger.Error("Submit: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Submit - repository error: %v", ErrInternal, err)
	}
	if open {
		s.logger.Warn("Submit: user=%d already has an open application", userID)
		return nil, ErrApplicationExists
	}

	// 4. Создаем заявку
	created, err := s.appRepo.Create(ctx, &domain.VendorApplication{
		UserID:              userID,
		BusinessName:        strings.TrimSpace(req.BusinessName),
		BusinessType:        strings.TrimSpace(req.BusinessType),
		BusinessAddress:     strings.TrimSpace(req.BusinessAddress),
		BusinessDescription: strings.TrimSpace(req.BusinessDescription),
		Experience:          req.Experience,
		Documents:           req.Documents,
	})
	if err != nil {
		s.logger.Error("Submit: failed to create application for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Submit - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Submit: created application id=%d for user=%d", created.ID, userID)
	return models.FromDomainApplication(created), nil
}

// GetMine возвращает последнюю заявку пользователя
func (s *Service) GetMine(ctx context.Context, userID int64) (*models.ApplicationResponse, error) {
	app, err := s.appRepo.GetLatestByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, appRepo.ErrApplicationNotFound) {
			return nil, ErrApplicationNotFound
		}
		s.logger.Error("GetMine: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetMine - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainApplication(app), nil
}

// List возвращает заявки для администратора, опционально по статусу
func (s *Service) List(ctx context.Context, status *string) (*models.ApplicationListResponse, error) {
	var domainStatus *domain.ApplicationStatus
	if status != nil {
		st := domain.ApplicationStatus(*status)
		if !st.IsValid() {
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &st
	}

	apps, err := s.appRepo.List(ctx, domainStatus)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainApplicationList(apps), nil
}

// Reject отклоняет заявку в статусе pending
// Других побочных эффектов нет, повторное рассмотрение возвращает ErrAlreadyReviewed
func (s *Service) Reject(ctx context.Context, id, reviewerID int64, req *models.RejectApplicationRequest) (*models.ApplicationResponse, error) {
	s.logger.Info("Reject: application id=%d by admin=%d", id, reviewerID)

	var reason *string
	if req != nil && req.Reason != nil {
		trimmed := strings.TrimSpace(*req.Reason)
		if utf8.RuneCountInString(trimmed) > domain.MaxRejectionReasonLength {
			return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxRejectionReasonLength)
		}
		if trimmed != "" {
			reason = &trimmed
		}
	}

	err := s.appRepo.MarkReviewed(ctx, id, domain.ApplicationRejected, reviewerID, s.timeProvider.Now(), reason)
	if err != nil {
		switch {
		case errors.Is(err, appRepo.ErrApplicationNotFound):
			s.logger.Warn("Reject: application id=%d not found", id)
			return nil, ErrApplicationNotFound
		case errors.Is(err, appRepo.ErrAlreadyReviewed):
			s.logger.Warn("Reject: application id=%d already reviewed", id)
			return nil, ErrAlreadyReviewed
		}
		s.logger.Error("Reject: repository error for application id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
	}

	s.metrics.IncVendorApplicationReviewed(string(domain.ApplicationRejected))

	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Reject: failed to reload application id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Reject: application id=%d rejected", id)
	return models.FromDomainApplication(app), nil
}

func validateSubmit(req *models.SubmitApplicationRequest) error {
	if strings.TrimSpace(req.BusinessName) == "" {
		return fmt.Errorf("%w: businessName is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.BusinessType) == "" {
		return fmt.Errorf("%w: businessType is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.BusinessAddress) == "" {
		return fmt.Errorf("%w: businessAddress is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.BusinessDescription) == "" {
		return fmt.Errorf("%w: businessDescription is required", ErrInvalidInput)
	}
	return nil
}
