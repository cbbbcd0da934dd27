package vendorapplications

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// ApplicationRepository интерфейс репозитория заявок
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.VendorApplication) (*domain.VendorApplication, error)
	GetLatestByUserID(ctx context.Context, userID int64) (*domain.VendorApplication, error)
	HasOpenApplication(ctx context.Context, userID int64) (bool, error)
	List(ctx context.Context, status *domain.ApplicationStatus) ([]*domain.VendorApplication, error)
	MarkReviewed(
		ctx context.Context,
		id int64,
		status domain.ApplicationStatus,
		reviewerID int64,
		reviewedAt time.Time,
		rejectionReason *string,
	) error
	GetByID(ctx context.Context, id int64) (*domain.VendorApplication, error)
}

// RoleResolver возвращает актуальную роль пользователя
type RoleResolver interface {
	GetRole(ctx context.Context, userID int64) (domain.Role, error)
}

// Metrics счетчики рассмотренных заявок
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
