package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplicationStatus статус заявки на получение роли вендора
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// IsValid returns true for known application statuses
func (s ApplicationStatus) IsValid() bool {
	return s == ApplicationPending || s == ApplicationApproved || s == ApplicationRejected
}

// VendorApplication заявка пользователя на получение роли вендора
// pending -> approved | rejected, оба конечных состояния терминальны
type VendorApplication struct {
	ID                  int64
	UserID              int64
	BusinessName        string
	BusinessType        string
	BusinessAddress     string
	BusinessDescription string
	Experience          *string
	Documents           *string
	Status              ApplicationStatus
	ReviewedBy          *int64
	ReviewedAt          *time.Time
	RejectionReason     *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsPending returns true if the application has not been reviewed yet
func (a *VendorApplication) IsPending() bool {
	return a.Status == ApplicationPending
}

// VendorProfile профиль вендора, создается ровно один раз при одобрении заявки
type VendorProfile struct {
	ID                  int64
	UserID              int64
	BusinessName        string
	BusinessType        string
	BusinessAddress     string
	BusinessDescription string
	Experience          *string
	Documents           *string
	TotalEarnings       decimal.Decimal
	TotalBookings       int
	Rating              float64
	IsActive            bool
	ApprovedAt          time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewVendorProfile создает профиль вендора из одобренной заявки с нулевыми счетчиками
func NewVendorProfile(app *VendorApplication, approvedAt time.Time) *VendorProfile {
	return &VendorProfile{
		UserID:              app.UserID,
		BusinessName:        app.BusinessName,
		BusinessType:        app.BusinessType,
		BusinessAddress:     app.BusinessAddress,
		BusinessDescription: app.BusinessDescription,
		Experience:          app.Experience,
		Documents:           app.Documents,
		TotalEarnings:       decimal.Zero,
		TotalBookings:       0,
		Rating:              0,
		IsActive:            true,
		ApprovedAt:          approvedAt,
	}
}
