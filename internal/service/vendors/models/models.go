package models

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// UpdateVendorProfileRequest запрос на обновление бизнес-информации вендора
type UpdateVendorProfileRequest struct {
	BusinessName        string  `json:"businessName"`
	BusinessType        string  `json:"businessType"`
	BusinessAddress     string  `json:"businessAddress"`
	BusinessDescription string  `json:"businessDescription"`
	Experience          *string `json:"experience,omitempty"`
	Documents           *string `json:"documents,omitempty"`
}

// VendorProfileResponse ответ с профилем вендора
type VendorProfileResponse struct {
	ID                  int64     `json:"id"`
	UserID              int64     `json:"userId"`
	BusinessName        string    `json:"businessName"`
	BusinessType        string    `json:"businessType"`
	BusinessAddress     string    `json:"businessAddress"`
	BusinessDescription string    `json:"businessDescription"`
	Experience          *string   `json:"experience,omitempty"`
	Documents           *string   `json:"documents,omitempty"`
	TotalEarnings       string    `json:"totalEarnings"`
	TotalBookings       int       `json:"totalBookings"`
	Rating              float64   `json:"rating"`
	IsActive            bool      `json:"isActive"`
	ApprovedAt          time.Time `json:"approvedAt"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// VendorStatsResponse статистика вендора
type VendorStatsResponse struct {
	TotalBookings     int64  `json:"totalBookings"`
	PendingBookings   int64  `json:"pendingBookings"`
	CompletedBookings int64  `json:"completedBookings"`
	TotalEarnings     string `json:"totalEarnings"`
}

// FromDomainVendorProfile конвертирует domain модель в DTO
func FromDomainVendorProfile(v *domain.VendorProfile) *VendorProfileResponse {
	if v == nil {
		return nil
	}

	return &VendorProfileResponse{
		ID:                  v.ID,
		UserID:              v.UserID,
		BusinessName:        v.BusinessName,
		BusinessType:        v.BusinessType,
		BusinessAddress:     v.BusinessAddress,
		BusinessDescription: v.BusinessDescription,
		Experience:          v.Experience,
		Documents:           v.Documents,
		TotalEarnings:       v.TotalEarnings.StringFixed(domain.MoneyPlaces),
		TotalBookings:       v.TotalBookings,
		Rating:              v.Rating,
		IsActive:            v.IsActive,
		ApprovedAt:          v.ApprovedAt,
		CreatedAt:           v.CreatedAt,
		UpdatedAt:           v.UpdatedAt,
	}
}

// FromDomainVendorStats конвертирует статистику в DTO
func FromDomainVendorStats(s *domain.VendorStats) *VendorStatsResponse {
	return &VendorStatsResponse{
		TotalBookings:     s.TotalBookings,
		PendingBookings:   s.PendingBookings,
		CompletedBookings: s.CompletedBookings,
		TotalEarnings:     s.TotalEarnings.StringFixed(domain.MoneyPlaces),
	}
}
