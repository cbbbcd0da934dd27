package domain

import "time"

// Review отзыв на завершенное бронирование (не более одного на бронирование)
type Review struct {
	ID        int64
	BookingID int64
	UserID    int64
	ServiceID int64
	VendorID  *int64
	Rating    int
	Comment   *string
	CreatedAt time.Time
}
