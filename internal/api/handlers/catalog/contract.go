package catalog

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/service/catalog/models"
)

type CatalogService interface {
	ListCategories(ctx context.Context, onlyActive bool) (*models.CategoryListResponse, error)
	ListCities(ctx context.Context, onlyActive bool) (*models.CityListResponse, error)
	ListPublicServices(ctx context.Context, req *models.ListServicesRequest) (*models.ServiceListResponse, error)
	GetPublicService(ctx context.Context, id int64) (*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
