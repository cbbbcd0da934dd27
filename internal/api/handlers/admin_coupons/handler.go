package admin_coupons

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/coupons"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/coupons/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCouponID    = "некорректный ID купона"
	msgNotFound           = "купон не найден"
	msgCodeExists         = "купон с таким кодом уже существует"
	msgInvalidInput       = "некорректные условия купона"
)

type Handler struct {
	service CouponService
	logger  Logger
}

func NewHandler(service CouponService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/admin/coupons
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.respondError(w, "GET /admin/coupons", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/admin/coupons
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CouponRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/coupons - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	coupon, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/coupons", err)
		return
	}

	h.logger.Info("POST /admin/coupons - Coupon created: coupon_id=%d, code=%s", coupon.ID, coupon.Code)
	handlers.RespondJSON(w, http.StatusCreated, coupon)
}

// Update PUT /api/v1/admin/coupons/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	couponID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PUT /admin/coupons/{id} - Invalid coupon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCouponID)
		return
	}

	var req models.CouponRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/coupons/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	coupon, err := h.service.Update(r.Context(), couponID, &req)
	if err != nil {
		h.respondError(w, "PUT /admin/coupons/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/coupons/{id} - Coupon updated: coupon_id=%d", couponID)
	handlers.RespondJSON(w, http.StatusOK, coupon)
}

// Delete DELETE /api/v1/admin/coupons/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	couponID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /admin/coupons/{id} - Invalid coupon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCouponID)
		return
	}

	if err := h.service.Delete(r.Context(), couponID); err != nil {
		h.respondError(w, "DELETE /admin/coupons/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/coupons/{id} - Coupon deleted: coupon_id=%d", couponID)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, coupons.ErrCouponNotFound):
		h.logger.Warn("%s - Coupon not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, coupons.ErrCodeAlreadyExists):
		h.logger.Warn("%s - Coupon code already exists", route)
		handlers.RespondConflict(w, msgCodeExists)

	case errors.Is(err, coupons.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed: error=%v", route, err)
		handlers.RespondInternalError(w)
	}
}
