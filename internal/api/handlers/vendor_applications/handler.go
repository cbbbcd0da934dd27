package vendor_applications

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/vendorapplications"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/vendorapplications/models"
	approveApplication "github.com/m04kA/SMC-MarketplaceService/internal/usecase/approve_vendor_application"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidApplicationID = "некорректный ID заявки"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidInput         = "заполните название, тип, адрес и описание бизнеса"
	msgInvalidStatus        = "некорректный статус заявки"
	msgNotFound             = "заявка не найдена"
	msgApplicationExists    = "у вас уже есть заявка на рассмотрении или одобренная заявка"
	msgAlreadyVendor        = "вы уже вендор или администратор"
	msgAlreadyReviewed      = "заявка уже рассмотрена"
	msgVendorExists         = "у пользователя уже есть профиль вендора"
	msgApplicantNotFound    = "заявитель не найден"
)

type Handler struct {
	service ApplicationService
	approve ApproveUseCase
	logger  Logger
}

func NewHandler(service ApplicationService, approve ApproveUseCase, logger Logger) *Handler {
	return &Handler{
		service: service,
		approve: approve,
		logger:  logger,
	}
}

// Submit POST /api/v1/vendor-applications
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /vendor-applications - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.SubmitApplicationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /vendor-applications - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	app, err := h.service.Submit(r.Context(), userID, &req)
	if err != nil {
		h.respondError(w, "POST /vendor-applications", err)
		return
	}

	h.logger.Info("POST /vendor-applications - Application submitted successfully: application_id=%d, user_id=%d",
		app.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, app)
}

// GetMine GET /api/v1/vendor-applications/me
func (h *Handler) GetMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /vendor-applications/me - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	app, err := h.service.GetMine(r.Context(), userID)
	if err != nil {
		h.respondError(w, "GET /vendor-applications/me", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, app)
}

// List GET /api/v1/admin/vendor-applications?status=pending
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), handlers.QueryString(r, "status"))
	if err != nil {
		if errors.Is(err, vendorapplications.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.respondError(w, "GET /admin/vendor-applications", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Approve POST /api/v1/admin/vendor-applications/{id}/approve
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	applicationID, adminID, ok := h.reviewParams(w, r, "POST /admin/vendor-applications/{id}/approve")
	if !ok {
		return
	}

	result, err := h.approve.Execute(r.Context(), &approveApplication.Request{
		ApplicationID: applicationID,
		ReviewerID:    adminID,
	})
	if err != nil {
		h.respondError(w, "POST /admin/vendor-applications/{id}/approve", err)
		return
	}

	h.logger.Info("POST /admin/vendor-applications/{id}/approve - Application approved: application_id=%d, vendor_id=%d",
		applicationID, result.Vendor.ID)
	handlers.RespondJSON(w, http.StatusOK, FromApproveResponse(result))
}

// Reject POST /api/v1/admin/vendor-applications/{id}/reject
// Тело запроса с причиной необязательно
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	applicationID, adminID, ok := h.reviewParams(w, r, "POST /admin/vendor-applications/{id}/reject")
	if !ok {
		return
	}

	var req models.RejectApplicationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("POST /admin/vendor-applications/{id}/reject - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	app, err := h.service.Reject(r.Context(), applicationID, adminID, &req)
	if err != nil {
		h.respondError(w, "POST /admin/vendor-applications/{id}/reject", err)
		return
	}

	h.logger.Info("POST /admin/vendor-applications/{id}/reject - Application rejected: application_id=%d", applicationID)
	handlers.RespondJSON(w, http.StatusOK, app)
}

func (h *Handler) reviewParams(w http.ResponseWriter, r *http.Request, route string) (int64, int64, bool) {
	applicationID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("%s - Invalid application ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidApplicationID)
		return 0, 0, false
	}

	adminID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return 0, 0, false
	}

	return applicationID, adminID, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, vendorapplications.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, vendorapplications.ErrApplicationNotFound),
		errors.Is(err, approveApplication.ErrApplicationNotFound):
		h.logger.Warn("%s - Application not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, vendorapplications.ErrApplicationExists):
		h.logger.Warn("%s - Open application exists", route)
		handlers.RespondConflict(w, msgApplicationExists)

	case errors.Is(err, vendorapplications.ErrAlreadyVendor):
		h.logger.Warn("%s - User already vendor or admin", route)
		handlers.RespondConflict(w, msgAlreadyVendor)

	case errors.Is(err, vendorapplications.ErrAlreadyReviewed),
		errors.Is(err, approveApplication.ErrAlreadyReviewed):
		h.logger.Warn("%s - Application already reviewed", route)
		handlers.RespondConflict(w, msgAlreadyReviewed)

	case errors.Is(err, approveApplication.ErrVendorExists):
		h.logger.Warn("%s - Vendor profile already exists", route)
		handlers.RespondConflict(w, msgVendorExists)

	case errors.Is(err, approveApplication.ErrUserNotFound):
		h.logger.Warn("%s - Applicant not found", route)
		handlers.RespondNotFound(w, msgApplicantNotFound)

	default:
		h.logger.Error("%s - Failed: error=%v", route, err)
		handlers.RespondInternalError(w)
	}
}
