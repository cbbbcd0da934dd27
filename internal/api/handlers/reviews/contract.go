package reviews

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/service/reviews/models"
)

type ReviewService interface {
	Create(ctx context.Context, bookingID, userID int64, req *models.CreateReviewRequest) (*models.ReviewResponse, error)
	ListByService(ctx context.Context, serviceID int64) (*models.ReviewListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
