package admin_users

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/profiles"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/profiles/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidUserID      = "некорректный ID пользователя"
	msgNotFound           = "пользователь не найден"
	msgInvalidInput       = "некорректные данные пользователя"
	msgSelfDelete         = "нельзя удалить собственную учетную запись"
	msgVendorRole         = "роль vendor выдается только одобрением заявки вендора"
)

type Handler struct {
	service ProfileService
	logger  Logger
}

func NewHandler(service ProfileService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/admin/users?role=vendor
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), handlers.QueryString(r, "role"))
	if err != nil {
		h.respondError(w, "GET /admin/users", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Update PUT /api/v1/admin/users/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PUT /admin/users/{id} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	var req models.AdminUpdateUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/users/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	profile, err := h.service.AdminUpdate(r.Context(), userID, &req)
	if err != nil {
		h.respondError(w, "PUT /admin/users/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/users/{id} - User updated: user_id=%d, role=%s", userID, profile.Role)
	handlers.RespondJSON(w, http.StatusOK, profile)
}

// Delete DELETE /api/v1/admin/users/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /admin/users/{id} - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	if adminID, ok := middleware.GetUserID(r.Context()); ok && adminID == userID {
		h.logger.Warn("DELETE /admin/users/{id} - Self delete attempt: user_id=%d", userID)
		handlers.RespondBadRequest(w, msgSelfDelete)
		return
	}

	if err := h.service.Delete(r.Context(), userID); err != nil {
		h.respondError(w, "DELETE /admin/users/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/users/{id} - User deleted: user_id=%d", userID)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, profiles.ErrProfileNotFound):
		h.logger.Warn("%s - User not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, profiles.ErrVendorRoleRequiresApplication):
		h.logger.Warn("%s - Vendor role without application", route)
		handlers.RespondConflict(w, msgVendorRole)

	case errors.Is(err, profiles.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed: error=%v", route, err)
		handlers.RespondInternalError(w)
	}
}
