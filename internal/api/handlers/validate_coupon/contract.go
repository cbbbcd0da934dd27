package validate_coupon

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/service/coupons/models"
)

type CouponService interface {
	Quote(ctx context.Context, req *models.QuoteRequest) (*models.QuoteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
