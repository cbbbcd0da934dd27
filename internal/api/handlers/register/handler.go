package register

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/profiles"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/profiles/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "укажите корректный email и имя"
	msgEmailTaken         = "пользователь с таким email уже зарегистрирован"
)

type Handler struct {
	service    ProfileService
	issueToken TokenIssuer
	logger     Logger
}

func NewHandler(service ProfileService, issueToken TokenIssuer, logger Logger) *Handler {
	return &Handler{
		service:    service,
		issueToken: issueToken,
		logger:     logger,
	}
}

// Handle POST /api/v1/auth/register
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	profile, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, profiles.ErrInvalidInput):
			h.logger.Warn("POST /auth/register - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, profiles.ErrEmailAlreadyExists):
			h.logger.Warn("POST /auth/register - Email already registered")
			handlers.RespondConflict(w, msgEmailTaken)

		default:
			h.logger.Error("POST /auth/register - Failed to register: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	token, err := h.issueToken(profile.ID)
	if err != nil {
		h.logger.Error("POST /auth/register - Failed to issue token: user_id=%d, error=%v", profile.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /auth/register - User registered successfully: user_id=%d", profile.ID)
	handlers.RespondJSON(w, http.StatusCreated, RegisterResponse{User: profile, Token: token})
}
