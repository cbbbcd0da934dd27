package stats

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// StatsRepository интерфейс репозитория статистики
type StatsRepository interface {
	GetAdminStats(ctx context.Context) (*domain.AdminStats, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
