package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-MarketplaceService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime         = "некорректный формат времени, ожидается HH:MM"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgServiceNotFound     = "услуга не найдена"
	msgServiceUnavailable  = "услуга недоступна для бронирования"
	msgInvalidBookingDate  = "дата бронирования не может быть в прошлом"
	msgInvalidInput        = "некорректные данные бронирования"
	msgCouponNotFound      = "купон не найден или неактивен"
	msgCouponExpired       = "срок действия купона истек"
	msgCouponUsageExceeded = "лимит использований купона исчерпан"
	msgBelowMinimum        = "сумма заказа меньше минимальной для купона"
)

var (
	errInvalidDate = errors.New("invalid booking date format")
	errInvalidTime = errors.New("invalid booking time format")
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: user_id=%d, service_id=%d", userID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceUnavailable):
			h.logger.Warn("POST /bookings - Service unavailable: user_id=%d, service_id=%d", userID, req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceUnavailable)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Booking date in the past: user_id=%d, date=%s", userID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrCouponNotFound):
			h.logger.Warn("POST /bookings - Coupon not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgCouponNotFound)

		case errors.Is(err, createBooking.ErrCouponExpired):
			h.logger.Warn("POST /bookings - Coupon expired: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgCouponExpired)

		case errors.Is(err, createBooking.ErrCouponUsageExceeded):
			h.logger.Warn("POST /bookings - Coupon usage exceeded: user_id=%d", userID)
			handlers.RespondConflict(w, msgCouponUsageExceeded)

		case errors.Is(err, createBooking.ErrBelowMinimum):
			h.logger.Warn("POST /bookings - Order below coupon minimum: user_id=%d, service_id=%d", userID, req.ServiceID)
			handlers.RespondBadRequest(w, msgBelowMinimum)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, service_id=%d, error=%v",
				userID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, service_id=%d",
		result.Booking.ID, userID, req.ServiceID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
