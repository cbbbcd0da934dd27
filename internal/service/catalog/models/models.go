package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// Request модели

// CategoryRequest запрос на создание или обновление категории
type CategoryRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug,omitempty"` // пустой - генерируется из названия
	Icon        *string `json:"icon,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// CityRequest запрос на создание или обновление района
type CityRequest struct {
	Name     string `json:"name"`
	State    string `json:"state"`
	IsActive *bool  `json:"isActive,omitempty"`
}

// ServiceRequest запрос на создание или обновление услуги
type ServiceRequest struct {
	Name        string          `json:"name"`
	CategoryID  int64           `json:"categoryId"`
	CityID      int64           `json:"cityId"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    *string         `json:"imageUrl,omitempty"`
	Description *string         `json:"description,omitempty"`
	Features    []string        `json:"features,omitempty"`
	Status      *string         `json:"status,omitempty"` // по умолчанию active
}

// ListServicesRequest фильтр каталога
type ListServicesRequest struct {
	CategoryID *int64
	CityID     *int64
	VendorID   *int64
	Status     *string
	Search     *string
}

// Response модели

// CategoryResponse ответ с категорией
type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Icon        *string   `json:"icon,omitempty"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryListResponse ответ со списком категорий
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// CityResponse ответ с районом
type CityResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	State     string    `json:"state"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CityListResponse ответ со списком районов
type CityListResponse struct {
	Cities []CityResponse `json:"cities"`
}

// ServiceResponse ответ с услугой
type ServiceResponse struct {
	ID           int64     `json:"id"`
	VendorID     *int64    `json:"vendorId,omitempty"`
	AdminCreated bool      `json:"adminCreated"`
	Name         string    `json:"name"`
	CategoryID   int64     `json:"categoryId"`
	CityID       int64     `json:"cityId"`
	Price        string    `json:"price"`
	Rating       float64   `json:"rating"`
	ImageURL     *string   `json:"imageUrl,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Features     []string  `json:"features"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// Методы конвертации

// FromDomainCategory конвертирует domain модель в DTO
func FromDomainCategory(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Icon:        c.Icon,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// FromDomainCategoryList конвертирует список категорий в DTO
func FromDomainCategoryList(categories []*domain.Category) *CategoryListResponse {
	resp := &CategoryListResponse{Categories: make([]CategoryResponse, 0, len(categories))}
	for _, c := range categories {
		resp.Categories = append(resp.Categories, FromDomainCategory(c))
	}
	return resp
}

// FromDomainCity конвертирует domain модель в DTO
func FromDomainCity(c *domain.City) CityResponse {
	return CityResponse{
		ID:        c.ID,
		Name:      c.Name,
		State:     c.State,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// FromDomainCityList конвертирует список районов в DTO
func FromDomainCityList(cities []*domain.City) *CityListResponse {
	resp := &CityListResponse{Cities: make([]CityResponse, 0, len(cities))}
	for _, c := range cities {
		resp.Cities = append(resp.Cities, FromDomainCity(c))
	}
	return resp
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	features := s.Features
	if features == nil {
		features = []string{}
	}

	return &ServiceResponse{
		ID:           s.ID,
		VendorID:     s.VendorID,
		AdminCreated: s.AdminCreated,
		Name:         s.Name,
		CategoryID:   s.CategoryID,
		CityID:       s.CityID,
		Price:        s.Price.StringFixed(domain.MoneyPlaces),
		Rating:       s.Rating,
		ImageURL:     s.ImageURL,
		Description:  s.Description,
		Features:     features,
		Status:       string(s.Status),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список услуг в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, s := range services {
		if serviceResp := FromDomainService(s); serviceResp != nil {
			resp.Services = append(resp.Services, *serviceResp)
		}
	}
	return resp
}
