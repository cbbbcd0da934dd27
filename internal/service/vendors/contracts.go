package vendors

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// VendorRepository интерфейс репозитория профилей вендоров
type VendorRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.VendorProfile, error)
	UpdateBusiness(ctx context.Context, vendor *domain.VendorProfile) (*domain.VendorProfile, error)
}

// StatsRepository интерфейс репозитория статистики
type StatsRepository interface {
	GetVendorStats(ctx context.Context, vendorID int64) (*domain.VendorStats, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
