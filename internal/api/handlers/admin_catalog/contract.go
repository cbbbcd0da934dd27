package admin_catalog

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/service/catalog/models"
)

type CatalogService interface {
	ListCategories(ctx context.Context, onlyActive bool) (*models.CategoryListResponse, error)
	CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id int64, req *models.CategoryRequest) (*models.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id int64) error

	ListCities(ctx context.Context, onlyActive bool) (*models.CityListResponse, error)
	CreateCity(ctx context.Context, req *models.CityRequest) (*models.CityResponse, error)
	UpdateCity(ctx context.Context, id int64, req *models.CityRequest) (*models.CityResponse, error)
	DeleteCity(ctx context.Context, id int64) error

	ListAllServices(ctx context.Context, req *models.ListServicesRequest) (*models.ServiceListResponse, error)
	AdminCreateService(ctx context.Context, req *models.ServiceRequest) (*models.ServiceResponse, error)
	AdminUpdateService(ctx context.Context, id int64, req *models.ServiceRequest) (*models.ServiceResponse, error)
	AdminDeleteService(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
