package admin_users

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/service/profiles/models"
)

type ProfileService interface {
	List(ctx context.Context, role *string) (*models.ProfileListResponse, error)
	AdminUpdate(ctx context.Context, id int64, req *models.AdminUpdateUserRequest) (*models.ProfileResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
