package vendor_applications

import (
	"github.com/m04kA/SMC-MarketplaceService/internal/service/vendorapplications/models"
	vendorModels "github.com/m04kA/SMC-MarketplaceService/internal/service/vendors/models"
	approveApplication "github.com/m04kA/SMC-MarketplaceService/internal/usecase/approve_vendor_application"
)

// ApproveResponse одобренная заявка и созданный профиль вендора
type ApproveResponse struct {
	Application *models.ApplicationResponse        `json:"application"`
	Vendor      *vendorModels.VendorProfileResponse `json:"vendor"`
}

// FromApproveResponse конвертирует ответ use case в HTTP response
func FromApproveResponse(resp *approveApplication.Response) *ApproveResponse {
	return &ApproveResponse{
		Application: models.FromDomainApplication(resp.Application),
		Vendor:      vendorModels.FromDomainVendorProfile(resp.Vendor),
	}
}
