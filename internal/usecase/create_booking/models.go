package create_booking

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

// Request модель запроса на оформление бронирования
type Request struct {
	UserID          int64            // ID покупателя
	ServiceID       int64            // ID услуги
	Date            time.Time        // Дата оказания услуги (без времени)
	Time            types.TimeString // Время оказания услуги (например, "10:00")
	SpecialRequests *string          // Пожелания (опционально)
	BillingAddress  string           // Адрес для счета
	PaymentMethod   string           // online | cash
	CouponCode      *string          // Код купона (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking    *domain.Booking
	CouponCode *string // нормализованный код примененного купона
}
