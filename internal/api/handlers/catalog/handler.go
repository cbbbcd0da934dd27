package catalog

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/catalog"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/catalog/models"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidFilter    = "некорректный фильтр каталога"
	msgServiceNotFound  = "услуга не найдена"
)

// Handler публичный каталог: категории, районы и услуги
type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ListCategories GET /api/v1/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListCategories(r.Context(), true)
	if err != nil {
		h.logger.Error("GET /categories - Failed to list categories: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ListCities GET /api/v1/cities
func (h *Handler) ListCities(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListCities(r.Context(), true)
	if err != nil {
		h.logger.Error("GET /cities - Failed to list cities: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ListServices GET /api/v1/services?categoryId=&cityId=&vendorId=&search=
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	req, err := ParseServicesFilter(r)
	if err != nil {
		h.logger.Warn("GET /services - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.ListPublicServices(r.Context(), req)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			h.logger.Warn("GET /services - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /services - Failed to list services: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services - Services retrieved successfully: count=%d", len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// GetService GET /api/v1/services/{serviceId}
func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.PathID(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.service.GetPublicService(r.Context(), serviceID)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			h.logger.Warn("GET /services/{id} - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)
			return
		}
		h.logger.Error("GET /services/{id} - Failed to get service: service_id=%d, error=%v", serviceID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// ParseServicesFilter читает фильтр каталога из query параметров
func ParseServicesFilter(r *http.Request) (*models.ListServicesRequest, error) {
	categoryID, err := handlers.QueryInt64(r, "categoryId")
	if err != nil {
		return nil, err
	}
	cityID, err := handlers.QueryInt64(r, "cityId")
	if err != nil {
		return nil, err
	}
	vendorID, err := handlers.QueryInt64(r, "vendorId")
	if err != nil {
		return nil, err
	}

	return &models.ListServicesRequest{
		CategoryID: categoryID,
		CityID:     cityID,
		VendorID:   vendorID,
		Status:     handlers.QueryString(r, "status"),
		Search:     handlers.QueryString(r, "search"),
	}, nil
}
