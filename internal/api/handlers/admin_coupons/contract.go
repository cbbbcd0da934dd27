package admin_coupons

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/service/coupons/models"
)

type CouponService interface {
	List(ctx context.Context) (*models.CouponListResponse, error)
	Create(ctx context.Context, req *models.CouponRequest) (*models.CouponResponse, error)
	Update(ctx context.Context, id int64, req *models.CouponRequest) (*models.CouponResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
