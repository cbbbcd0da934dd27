package vendors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	vendorRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/vendorprofile"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/vendors/models"
)

// Service сервис кабинета вендора
type Service struct {
	vendorRepo VendorRepository
	statsRepo  StatsRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса вендоров
func NewService(vendorRepo VendorRepository, statsRepo StatsRepository, logger Logger) *Service {
	return &Service{
		vendorRepo: vendorRepo,
		statsRepo:  statsRepo,
		logger:     logger,
	}
}

// GetMyProfile возвращает профиль вендора текущего пользователя
func (s *Service) GetMyProfile(ctx context.Context, userID int64) (*models.VendorProfileResponse, error) {
	vendor, err := s.getByUser(ctx, "GetMyProfile", userID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainVendorProfile(vendor), nil
}

// UpdateMyProfile обновляет бизнес-информацию вендора
func (s *Service) UpdateMyProfile(ctx context.Context, userID int64, req *models.UpdateVendorProfileRequest) (*models.VendorProfileResponse, error) {
	s.logger.Info("UpdateMyProfile: user=%d", userID)

	if strings.TrimSpace(req.BusinessName) == "" ||
		strings.TrimSpace(req.BusinessType) == "" ||
		strings.TrimSpace(req.BusinessAddress) == "" {
		return nil, fmt.Errorf("%w: businessName, businessType and businessAddress are required", ErrInvalidInput)
	}

	vendor, err := s.getByUser(ctx, "UpdateMyProfile", userID)
	if err != nil {
		return nil, err
	}

	vendor.BusinessName = strings.TrimSpace(req.BusinessName)
	vendor.BusinessType = strings.TrimSpace(req.BusinessType)
	vendor.BusinessAddress = strings.TrimSpace(req.BusinessAddress)
	vendor.BusinessDescription = req.BusinessDescription
	vendor.Experience = req.Experience
	vendor.Documents = req.Documents

	updated, err := s.vendorRepo.UpdateBusiness(ctx, vendor)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			return nil, ErrVendorNotFound
		}
		s.logger.Error("UpdateMyProfile: repository error for vendor id=%d: %v", vendor.ID, err)
		return nil, fmt.Errorf("%w: UpdateMyProfile - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateMyProfile: successfully updated vendor id=%d", updated.ID)
	return models.FromDomainVendorProfile(updated), nil
}

// GetMyStats возвращает статистику бронирований вендора
func (s *Service) GetMyStats(ctx context.Context, userID int64) (*models.VendorStatsResponse, error) {
	vendor, err := s.getByUser(ctx, "GetMyStats", userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.statsRepo.GetVendorStats(ctx, vendor.ID)
	if err != nil {
		s.logger.Error("GetMyStats: repository error for vendor id=%d: %v", vendor.ID, err)
		return nil, fmt.Errorf("%w: GetMyStats - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainVendorStats(stats), nil
}

func (s *Service) getByUser(ctx context.Context, op string, userID int64) (*domain.VendorProfile, error) {
	vendor, err := s.vendorRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			s.logger.Warn("%s: user=%d has no vendor profile", op, userID)
			return nil, ErrVendorNotFound
		}
		s.logger.Error("%s: repository error for user=%d: %v", op, userID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return vendor, nil
}
