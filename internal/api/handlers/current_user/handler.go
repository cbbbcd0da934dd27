package current_user

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
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "профиль не найден"
	msgInvalidInput       = "имя обязательно"
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

// Get GET /api/v1/users/me
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/me - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	profile, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		h.respondError(w, "GET /users/me", userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, profile)
}

// Update PUT /api/v1/users/me
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /users/me - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /users/me - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	profile, err := h.service.UpdateMe(r.Context(), userID, &req)
	if err != nil {
		h.respondError(w, "PUT /users/me", userID, err)
		return
	}

	h.logger.Info("PUT /users/me - Profile updated successfully: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, profile)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, userID int64, err error) {
	switch {
	case errors.Is(err, profiles.ErrProfileNotFound):
		h.logger.Warn("%s - Profile not found: user_id=%d", route, userID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, profiles.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: user_id=%d, error=%v", route, userID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed: user_id=%d, error=%v", route, userID, err)
		handlers.RespondInternalError(w)
	}
}
