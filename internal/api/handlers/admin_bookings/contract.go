package admin_bookings

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/service/bookings/models"
)

type BookingService interface {
	ListAll(ctx context.Context, status *string) (*models.BookingListResponse, error)
	AdminUpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error)
	AdminUpdatePaymentStatus(ctx context.Context, id int64, req *models.UpdatePaymentStatusRequest) (*models.BookingResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
