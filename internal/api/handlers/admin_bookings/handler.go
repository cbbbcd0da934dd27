package admin_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/bookings"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgNotFound           = "бронирование не найдено"
	msgInvalidInput       = "некорректный статус"
	msgInvalidTransition  = "недопустимый переход статуса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/admin/bookings?status=pending
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListAll(r.Context(), handlers.QueryString(r, "status"))
	if err != nil {
		h.respondError(w, "GET /admin/bookings", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// UpdateStatus PATCH /api/v1/admin/bookings/{bookingId}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingID(w, r, "PATCH /admin/bookings/{id}/status")
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.AdminUpdateStatus(r.Context(), bookingID, &req)
	if err != nil {
		h.respondError(w, "PATCH /admin/bookings/{id}/status", err)
		return
	}

	h.logger.Info("PATCH /admin/bookings/{id}/status - Booking status updated: booking_id=%d, status=%s",
		bookingID, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

// UpdatePaymentStatus PATCH /api/v1/admin/bookings/{bookingId}/payment
func (h *Handler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingID(w, r, "PATCH /admin/bookings/{id}/payment")
	if !ok {
		return
	}

	var req models.UpdatePaymentStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id}/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.AdminUpdatePaymentStatus(r.Context(), bookingID, &req)
	if err != nil {
		h.respondError(w, "PATCH /admin/bookings/{id}/payment", err)
		return
	}

	h.logger.Info("PATCH /admin/bookings/{id}/payment - Payment status updated: booking_id=%d, payment_status=%s",
		bookingID, booking.PaymentStatus)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

// Delete DELETE /api/v1/admin/bookings/{bookingId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingID(w, r, "DELETE /admin/bookings/{id}")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), bookingID); err != nil {
		h.respondError(w, "DELETE /admin/bookings/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/bookings/{id} - Booking deleted: booking_id=%d", bookingID)
	handlers.RespondNoContent(w)
}

func (h *Handler) bookingID(w http.ResponseWriter, r *http.Request, route string) (int64, bool) {
	id, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("%s - Invalid booking ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("%s - Booking not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, bookings.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid transition", route)
		handlers.RespondConflict(w, msgInvalidTransition)

	case errors.Is(err, bookings.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed: error=%v", route, err)
		handlers.RespondInternalError(w)
	}
}
