package current_user

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/service/profiles/models"
)

type ProfileService interface {
	GetByID(ctx context.Context, id int64) (*models.ProfileResponse, error)
	UpdateMe(ctx context.Context, id int64, req *models.UpdateProfileRequest) (*models.ProfileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
