package admin_stats

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/service/stats/models"
)

type StatsService interface {
	GetAdminStats(ctx context.Context) (*models.AdminStatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
