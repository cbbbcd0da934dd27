package register

import "github.com/m04kA/SMC-MarketplaceService/internal/service/profiles/models"

// RegisterResponse профиль и токен доступа
type RegisterResponse struct {
	User  *models.ProfileResponse `json:"user"`
	Token string                  `json:"token"`
}
