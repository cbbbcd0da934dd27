package models

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// Request модели

// RegisterRequest запрос на регистрацию покупателя
type RegisterRequest struct {
	Email   string  `json:"email"`
	Name    string  `json:"name"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// UpdateProfileRequest запрос на обновление контактных данных
type UpdateProfileRequest struct {
	Name      string  `json:"name"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// AdminUpdateUserRequest запрос администратора на изменение пользователя
type AdminUpdateUserRequest struct {
	UpdateProfileRequest
	Role *string `json:"role,omitempty"`
}

// Response модели

// ProfileResponse ответ с данными профиля
type ProfileResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	Role      string    `json:"role"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfileListResponse ответ со списком профилей
type ProfileListResponse struct {
	Users []ProfileResponse `json:"users"`
}

// FromDomainProfile конвертирует domain модель в DTO
func FromDomainProfile(p *domain.Profile) *ProfileResponse {
	if p == nil {
		return nil
	}

	return &ProfileResponse{
		ID:        p.ID,
		Email:     p.Email,
		Name:      p.Name,
		Phone:     p.Phone,
		Address:   p.Address,
		Role:      string(p.Role),
		AvatarURL: p.AvatarURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// FromDomainProfileList конвертирует список domain моделей в DTO
func FromDomainProfileList(profiles []*domain.Profile) *ProfileListResponse {
	resp := &ProfileListResponse{
		Users: make([]ProfileResponse, 0, len(profiles)),
	}

	for _, p := range profiles {
		if profileResp := FromDomainProfile(p); profileResp != nil {
			resp.Users = append(resp.Users, *profileResp)
		}
	}

	return resp
}
