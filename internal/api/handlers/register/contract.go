package register

import (
	"context"

	"github.com/m04kA/SMC-MarketplaceService/internal/service/profiles/models"
)

type ProfileService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.ProfileResponse, error)
}

// TokenIssuer выпускает JWT для нового пользователя
type TokenIssuer func(userID int64) (string, error)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
