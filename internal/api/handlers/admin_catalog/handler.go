package admin_catalog

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	catalogHandler "github.com/m04kA/SMC-MarketplaceService/internal/api/handlers/catalog"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/catalog"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidID          = "некорректный ID"
	msgInvalidFilter      = "некорректный фильтр"
	msgCategoryNotFound   = "категория не найдена"
	msgCityNotFound       = "район не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgAlreadyExists      = "запись с такими данными уже существует"
	msgInUse              = "запись используется и не может быть удалена"
	msgInvalidInput       = "некорректные данные"
)

// Handler управление справочниками и услугами из панели администратора
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

// ListCategories GET /api/v1/admin/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListCategories(r.Context(), false)
	if err != nil {
		h.respondError(w, "GET /admin/categories", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// CreateCategory POST /api/v1/admin/categories
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CategoryRequest
	if !h.decode(w, r, "POST /admin/categories", &req) {
		return
	}

	category, err := h.service.CreateCategory(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/categories", err)
		return
	}

	h.logger.Info("POST /admin/categories - Category created: category_id=%d, slug=%s", category.ID, category.Slug)
	handlers.RespondJSON(w, http.StatusCreated, category)
}

// UpdateCategory PUT /api/v1/admin/categories/{id}
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "PUT /admin/categories/{id}")
	if !ok {
		return
	}

	var req models.CategoryRequest
	if !h.decode(w, r, "PUT /admin/categories/{id}", &req) {
		return
	}

	category, err := h.service.UpdateCategory(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /admin/categories/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/categories/{id} - Category updated: category_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, category)
}

// DeleteCategory DELETE /api/v1/admin/categories/{id}
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "DELETE /admin/categories/{id}")
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /admin/categories/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/categories/{id} - Category deleted: category_id=%d", id)
	handlers.RespondNoContent(w)
}

// ListCities GET /api/v1/admin/cities
func (h *Handler) ListCities(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListCities(r.Context(), false)
	if err != nil {
		h.respondError(w, "GET /admin/cities", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// CreateCity POST /api/v1/admin/cities
func (h *Handler) CreateCity(w http.ResponseWriter, r *http.Request) {
	var req models.CityRequest
	if !h.decode(w, r, "POST /admin/cities", &req) {
		return
	}

	city, err := h.service.CreateCity(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/cities", err)
		return
	}

	h.logger.Info("POST /admin/cities - City created: city_id=%d", city.ID)
	handlers.RespondJSON(w, http.StatusCreated, city)
}

// UpdateCity PUT /api/v1/admin/cities/{id}
func (h *Handler) UpdateCity(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "PUT /admin/cities/{id}")
	if !ok {
		return
	}

	var req models.CityRequest
	if !h.decode(w, r, "PUT /admin/cities/{id}", &req) {
		return
	}

	city, err := h.service.UpdateCity(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /admin/cities/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/cities/{id} - City updated: city_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, city)
}

// DeleteCity DELETE /api/v1/admin/cities/{id}
func (h *Handler) DeleteCity(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "DELETE /admin/cities/{id}")
	if !ok {
		return
	}

	if err := h.service.DeleteCity(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /admin/cities/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/cities/{id} - City deleted: city_id=%d", id)
	handlers.RespondNoContent(w)
}

// ListServices GET /api/v1/admin/services
// В отличие от публичного каталога возвращает услуги в любом статусе
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	req, err := catalogHandler.ParseServicesFilter(r)
	if err != nil {
		h.logger.Warn("GET /admin/services - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.ListAllServices(r.Context(), req)
	if err != nil {
		h.respondError(w, "GET /admin/services", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// CreateService POST /api/v1/admin/services
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req models.ServiceRequest
	if !h.decode(w, r, "POST /admin/services", &req) {
		return
	}

	service, err := h.service.AdminCreateService(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/services", err)
		return
	}

	h.logger.Info("POST /admin/services - Service created: service_id=%d", service.ID)
	handlers.RespondJSON(w, http.StatusCreated, service)
}

// UpdateService PUT /api/v1/admin/services/{id}
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "PUT /admin/services/{id}")
	if !ok {
		return
	}

	var req models.ServiceRequest
	if !h.decode(w, r, "PUT /admin/services/{id}", &req) {
		return
	}

	service, err := h.service.AdminUpdateService(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /admin/services/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/services/{id} - Service updated: service_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, service)
}

// DeleteService DELETE /api/v1/admin/services/{id}
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "DELETE /admin/services/{id}")
	if !ok {
		return
	}

	if err := h.service.AdminDeleteService(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /admin/services/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/services/{id} - Service deleted: service_id=%d", id)
	handlers.RespondNoContent(w)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("%s - Invalid ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return 0, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, route string, dest interface{}) bool {
	if err := handlers.DecodeJSON(r, dest); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return false
	}
	return true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, catalog.ErrCategoryNotFound):
		h.logger.Warn("%s - Category not found", route)
		handlers.RespondNotFound(w, msgCategoryNotFound)

	case errors.Is(err, catalog.ErrCityNotFound):
		h.logger.Warn("%s - City not found", route)
		handlers.RespondNotFound(w, msgCityNotFound)

	case errors.Is(err, catalog.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found", route)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, catalog.ErrAlreadyExists):
		h.logger.Warn("%s - Already exists", route)
		handlers.RespondConflict(w, msgAlreadyExists)

	case errors.Is(err, catalog.ErrInUse):
		h.logger.Warn("%s - Record in use", route)
		handlers.RespondConflict(w, msgInUse)

	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed: error=%v", route, err)
		handlers.RespondInternalError(w)
	}
}
