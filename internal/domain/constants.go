package domain

// Комиссия платформы, процент от итоговой суммы бронирования
const PlatformFeePercent = 15

// Точность денежных сумм (знаков после запятой)
const MoneyPlaces = 2

// Business validation constants
const (
	MaxSpecialRequestsLength = 500
	MaxRejectionReasonLength = 500
	MaxReviewCommentLength   = 1000
	MaxCouponCodeLength      = 32
	MinReviewRating          = 1
	MaxReviewRating          = 5
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
