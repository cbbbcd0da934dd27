package bookings

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, paymentStatus *domain.PaymentStatus) error
	UpdatePaymentStatus(ctx context.Context, id int64, paymentStatus domain.PaymentStatus) error
	Delete(ctx context.Context, id int64) error
}

// VendorRepository интерфейс репозитория профилей вендоров
type VendorRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.VendorProfile, error)
	AddCompletedBooking(ctx context.Context, id int64, earning decimal.Decimal) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics бизнес-метрики бронирований
type Metrics interface {
	IncBookingStatusChanged(status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
