package reviews

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается при попытке оставить отзыв на чужое бронирование
	ErrAccessDenied = errors.New("access denied")

	// ErrBookingNotCompleted возвращается, если бронирование еще не завершено
	ErrBookingNotCompleted = errors.New("booking is not completed")

	// ErrAlreadyReviewed возвращается при повторном отзыве на бронирование
	ErrAlreadyReviewed = errors.New("booking already reviewed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
