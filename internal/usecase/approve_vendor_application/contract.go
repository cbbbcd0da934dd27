package approve_vendor_application

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// ApplicationRepository интерфейс репозитория заявок
type ApplicationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.VendorApplication, error)
	MarkReviewed(ctx context.Context, id int64, status domain.ApplicationStatus, reviewerID int64, reviewedAt time.Time, rejectionReason *string) error
}

// VendorRepository интерфейс репозитория профилей вендоров
type VendorRepository interface {
	Create(ctx context.Context, vendor *domain.VendorProfile) (*domain.VendorProfile, error)
}

// ProfileRepository интерфейс репозитория профилей пользователей
type ProfileRepository interface {
	UpdateRole(ctx context.Context, id int64, role domain.Role) error
}

// RoleCache сбрасывает закэшированную роль пользователя
type RoleCache interface {
	InvalidateRole(ctx context.Context, userID int64)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics бизнес-метрики заявок
type Metrics interface {
	IncVendorApplicationReviewed(decision string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
