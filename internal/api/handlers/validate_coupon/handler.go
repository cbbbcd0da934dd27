package validate_coupon

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/coupons"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/coupons/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInput        = "укажите код купона и положительную сумму заказа"
	msgCouponNotFound      = "купон не найден или неактивен"
	msgCouponExpired       = "срок действия купона истек"
	msgCouponUsageExceeded = "лимит использований купона исчерпан"
	msgBelowMinimum        = "сумма заказа меньше минимальной для купона"
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

// Handle POST /api/v1/coupons/validate
// Купон только проверяется, счетчик использований не меняется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /coupons/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	quote, err := h.service.Quote(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, coupons.ErrInvalidInput):
			h.logger.Warn("POST /coupons/validate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, coupons.ErrCouponNotFound):
			h.logger.Warn("POST /coupons/validate - Coupon not found: code=%s", req.Code)
			handlers.RespondNotFound(w, msgCouponNotFound)

		case errors.Is(err, coupons.ErrCouponExpired):
			h.logger.Warn("POST /coupons/validate - Coupon expired: code=%s", req.Code)
			handlers.RespondError(w, http.StatusGone, msgCouponExpired)

		case errors.Is(err, coupons.ErrCouponUsageExceeded):
			h.logger.Warn("POST /coupons/validate - Coupon usage exceeded: code=%s", req.Code)
			handlers.RespondConflict(w, msgCouponUsageExceeded)

		case errors.Is(err, coupons.ErrBelowMinimum):
			h.logger.Warn("POST /coupons/validate - Below minimum: code=%s, amount=%s", req.Code, req.Amount.String())
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgBelowMinimum)

		default:
			h.logger.Error("POST /coupons/validate - Failed to validate coupon: code=%s, error=%v", req.Code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /coupons/validate - Coupon accepted: code=%s, discount=%s", quote.Code, quote.Discount)
	handlers.RespondJSON(w, http.StatusOK, quote)
}
