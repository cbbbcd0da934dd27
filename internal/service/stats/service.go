package stats

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceService/internal/service/stats/models"
)

// Service сервис статистики платформы
type Service struct {
	statsRepo StatsRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса статистики
func NewService(statsRepo StatsRepository, logger Logger) *Service {
	return &Service{statsRepo: statsRepo, logger: logger}
}

// GetAdminStats возвращает сводку по платформе
func (s *Service) GetAdminStats(ctx context.Context) (*models.AdminStatsResponse, error) {
	stats, err := s.statsRepo.GetAdminStats(ctx)
	if err != nil {
		s.logger.Error("GetAdminStats: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAdminStats - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAdminStats: users=%d, bookings=%d, revenue=%s",
		stats.TotalUsers, stats.TotalBookings, stats.TotalRevenue.StringFixed(2))
	return models.FromDomainAdminStats(stats), nil
}
