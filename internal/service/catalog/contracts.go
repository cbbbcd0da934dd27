package catalog

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// CategoryRepository интерфейс репозитория категорий
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context, onlyActive bool) ([]*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

// CityRepository интерфейс репозитория районов
type CityRepository interface {
	Create(ctx context.Context, city *domain.City) (*domain.City, error)
	GetByID(ctx context.Context, id int64) (*domain.City, error)
	List(ctx context.Context, onlyActive bool) ([]*domain.City, error)
	Update(ctx context.Context, city *domain.City) (*domain.City, error)
	Delete(ctx context.Context, id int64) error
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	List(ctx context.Context, filter domain.ServicesFilter) ([]*domain.Service, error)
	Update(ctx context.Context, service *domain.Service) (*domain.Service, error)
	Delete(ctx context.Context, id int64) error
}

// VendorRepository интерфейс репозитория профилей вендоров
type VendorRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.VendorProfile, error)
}

// Cache интерфейс кэша справочников
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
