package approve_vendor_application

import "github.com/m04kA/SMC-MarketplaceService/internal/domain"

// Request модель запроса на одобрение заявки
type Request struct {
	ApplicationID int64 // ID заявки
	ReviewerID    int64 // ID администратора
}

// Response модель ответа: одобренная заявка и созданный профиль вендора
type Response struct {
	Application *domain.VendorApplication
	Vendor      *domain.VendorProfile
}
