package models

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// Request модели

// SubmitApplicationRequest заявка пользователя на роль вендора
type SubmitApplicationRequest struct {
	BusinessName        string  `json:"businessName"`
	BusinessType        string  `json:"businessType"`
	BusinessAddress     string  `json:"businessAddress"`
	BusinessDescription string  `json:"businessDescription"`
	Experience          *string `json:"experience,omitempty"`
	Documents           *string `json:"documents,omitempty"`
}

// RejectApplicationRequest отклонение заявки с необязательной причиной
type RejectApplicationRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// Response модели

// ApplicationResponse ответ с данными заявки
type ApplicationResponse struct {
	ID                  int64      `json:"id"`
	UserID              int64      `json:"userId"`
	BusinessName        string     `json:"businessName"`
	BusinessType        string     `json:"businessType"`
	BusinessAddress     string     `json:"businessAddress"`
	BusinessDescription string     `json:"businessDescription"`
	Experience          *string    `json:"experience,omitempty"`
	Documents           *string    `json:"documents,omitempty"`
	Status              string     `json:"status"`
	ReviewedBy          *int64     `json:"reviewedBy,omitempty"`
	ReviewedAt          *time.Time `json:"reviewedAt,omitempty"`
	RejectionReason     *string    `json:"rejectionReason,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// ApplicationListResponse ответ со списком заявок
type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
}

// FromDomainApplication конвертирует domain модель в DTO
func FromDomainApplication(a *domain.VendorApplication) *ApplicationResponse {
	if a == nil {
		return nil
	}

	return &ApplicationResponse{
		ID:                  a.ID,
		UserID:              a.UserID,
		BusinessName:        a.BusinessName,
		BusinessType:        a.BusinessType,
		BusinessAddress:     a.BusinessAddress,
		BusinessDescription: a.BusinessDescription,
		Experience:          a.Experience,
		Documents:           a.Documents,
		Status:              string(a.Status),
		ReviewedBy:          a.ReviewedBy,
		ReviewedAt:          a.ReviewedAt,
		RejectionReason:     a.RejectionReason,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

// FromDomainApplicationList конвертирует список domain моделей в DTO
func FromDomainApplicationList(apps []*domain.VendorApplication) *ApplicationListResponse {
	resp := &ApplicationListResponse{
		Applications: make([]ApplicationResponse, 0, len(apps)),
	}

	for _, a := range apps {
		if appResp := FromDomainApplication(a); appResp != nil {
			resp.Applications = append(resp.Applications, *appResp)
		}
	}

	return resp
}
