package models

import "github.com/m04kA/SMC-MarketplaceService/internal/domain"

// AdminStatsResponse сводка для панели администратора
type AdminStatsResponse struct {
	TotalUsers        int64  `json:"totalUsers"`
	TotalServices     int64  `json:"totalServices"`
	TotalBookings     int64  `json:"totalBookings"`
	TotalRevenue      string `json:"totalRevenue"`
	PendingBookings   int64  `json:"pendingBookings"`
	CompletedBookings int64  `json:"completedBookings"`
}

// FromDomainAdminStats конвертирует статистику в DTO
func FromDomainAdminStats(s *domain.AdminStats) *AdminStatsResponse {
	return &AdminStatsResponse{
		TotalUsers:        s.TotalUsers,
		TotalServices:     s.TotalServices,
		TotalBookings:     s.TotalBookings,
		TotalRevenue:      s.TotalRevenue.StringFixed(domain.MoneyPlaces),
		PendingBookings:   s.PendingBookings,
		CompletedBookings: s.CompletedBookings,
	}
}
