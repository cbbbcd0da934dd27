package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category категория услуг (салоны, декораторы, аренда авто и т.д.)
type Category struct {
	ID          int64
	Name        string
	Slug        string
	Icon        *string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// City район, в котором оказываются услуги
type City struct {
	ID        int64
	Name      string
	State     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServiceStatus статус публикации услуги
type ServiceStatus string

const (
	ServiceActive   ServiceStatus = "active"
	ServiceInactive ServiceStatus = "inactive"
)

// IsValid returns true for known service statuses
func (s ServiceStatus) IsValid() bool {
	return s == ServiceActive || s == ServiceInactive
}

// Service услуга, доступная для бронирования
type Service struct {
	ID           int64
	VendorID     *int64 // nil, если услуга создана администратором
	AdminCreated bool
	Name         string
	CategoryID   int64
	CityID       int64
	Price        decimal.Decimal
	Rating       float64
	ImageURL     *string
	Description  *string
	Features     []string
	Status       ServiceStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsBookable returns true if the service can be booked
func (s *Service) IsBookable() bool {
	return s.Status == ServiceActive
}

// IsOwnedBy returns true if the service belongs to the vendor profile
func (s *Service) IsOwnedBy(vendorID int64) bool {
	return s.VendorID != nil && *s.VendorID == vendorID
}

// ServicesFilter фильтр для каталога услуг
type ServicesFilter struct {
	CategoryID *int64
	CityID     *int64
	VendorID   *int64
	Status     *ServiceStatus
	Search     *string // подстрока названия, без учета регистра
}
