package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	servicesRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/services"
	vendorRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/vendorprofile"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/catalog/models"
)

// ListPublicServices возвращает активные услуги каталога
func (s *Service) ListPublicServices(ctx context.Context, req *models.ListServicesRequest) (*models.ServiceListResponse, error) {
	filter, err := buildFilter(req)
	if err != nil {
		return nil, err
	}
	active := domain.ServiceActive
	filter.Status = &active

	return s.listServices(ctx, "ListPublicServices", filter)
}

// GetPublicService возвращает активную услугу
// Неактивная услуга для публичного каталога не существует
func (s *Service) GetPublicService(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	service, err := s.getService(ctx, "GetPublicService", id)
	if err != nil {
		return nil, err
	}
	if !service.IsBookable() {
		return nil, ErrServiceNotFound
	}

	return models.FromDomainService(service), nil
}

// ListAllServices возвращает все услуги для администратора
func (s *Service) ListAllServices(ctx context.Context, req *models.ListServicesRequest) (*models.ServiceListResponse, error) {
	filter, err := buildFilter(req)
	if err != nil {
		return nil, err
	}

	return s.listServices(ctx, "ListAllServices", filter)
}

// AdminCreateService создает услугу от имени платформы (без вендора)
func (s *Service) AdminCreateService(ctx context.Context, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	service, err := serviceFromRequest(req)
	if err != nil {
		return nil, err
	}
	service.AdminCreated = true
	s.logger.Info("AdminCreateService: name=%s", service.Name)

	return s.createService(ctx, "AdminCreateService", service)
}

// AdminUpdateService обновляет любую услугу
func (s *Service) AdminUpdateService(ctx context.Context, id int64, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	service, err := serviceFromRequest(req)
	if err != nil {
		return nil, err
	}
	service.ID = id
	s.logger.Info("AdminUpdateService: id=%d", id)

	return s.updateService(ctx, "AdminUpdateService", service)
}

// AdminDeleteService удаляет любую услугу
func (s *Service) AdminDeleteService(ctx context.Context, id int64) error {
	s.logger.Info("AdminDeleteService: id=%d", id)
	return s.deleteService(ctx, "AdminDeleteService", id)
}

// ListVendorServices возвращает услуги текущего вендора
func (s *Service) ListVendorServices(ctx context.Context, userID int64) (*models.ServiceListResponse, error) {
	vendor, err := s.vendorByUser(ctx, "ListVendorServices", userID)
	if err != nil {
		return nil, err
	}

	return s.listServices(ctx, "ListVendorServices", domain.ServicesFilter{VendorID: &vendor.ID})
}

// CreateVendorService создает услугу текущего вендора
func (s *Service) CreateVendorService(ctx context.Context, userID int64, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	service, err := serviceFromRequest(req)
	if err != nil {
		return nil, err
	}

	vendor, err := s.vendorByUser(ctx, "CreateVendorService", userID)
	if err != nil {
		return nil, err
	}
	service.VendorID = &vendor.ID
	s.logger.Info("CreateVendorService: vendor=%d, name=%s", vendor.ID, service.Name)

	return s.createService(ctx, "CreateVendorService", service)
}

// UpdateVendorService обновляет услугу, принадлежащую текущему вендору
func (s *Service) UpdateVendorService(ctx context.Context, userID, id int64, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	service, err := serviceFromRequest(req)
	if err != nil {
		return nil, err
	}

	if _, err := s.ownedService(ctx, "UpdateVendorService", userID, id); err != nil {
		return nil, err
	}
	service.ID = id

	return s.updateService(ctx, "UpdateVendorService", service)
}

// DeleteVendorService удаляет услугу, принадлежащую текущему вендору
func (s *Service) DeleteVendorService(ctx context.Context, userID, id int64) error {
	if _, err := s.ownedService(ctx, "DeleteVendorService", userID, id); err != nil {
		return err
	}

	return s.deleteService(ctx, "DeleteVendorService", id)
}

func (s *Service) ownedService(ctx context.Context, op string, userID, id int64) (*domain.Service, error) {
	vendor, err := s.vendorByUser(ctx, op, userID)
	if err != nil {
		return nil, err
	}

	service, err := s.getService(ctx, op, id)
	if err != nil {
		return nil, err
	}

	if !service.IsOwnedBy(vendor.ID) {
		s.logger.Warn("%s: service id=%d does not belong to vendor=%d", op, id, vendor.ID)
		return nil, ErrAccessDenied
	}

	return service, nil
}

func (s *Service) vendorByUser(ctx context.Context, op string, userID int64) (*domain.VendorProfile, error) {
	vendor, err := s.vendorRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			s.logger.Warn("%s: user=%d has no vendor profile", op, userID)
			return nil, ErrVendorNotFound
		}
		s.logger.Error("%s: failed to get vendor for user=%d: %v", op, userID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return vendor, nil
}

func (s *Service) getService(ctx context.Context, op string, id int64) (*domain.Service, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapServiceError(op, err)
	}
	return service, nil
}

func (s *Service) listServices(ctx context.Context, op string, filter domain.ServicesFilter) (*models.ServiceListResponse, error) {
	services, err := s.serviceRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return models.FromDomainServiceList(services), nil
}

func (s *Service) createService(ctx context.Context, op string, service *domain.Service) (*models.ServiceResponse, error) {
	created, err := s.serviceRepo.Create(ctx, service)
	if err != nil {
		return nil, s.mapServiceError(op, err)
	}
	s.logger.Info("%s: created service id=%d", op, created.ID)
	return models.FromDomainService(created), nil
}

func (s *Service) updateService(ctx context.Context, op string, service *domain.Service) (*models.ServiceResponse, error) {
	updated, err := s.serviceRepo.Update(ctx, service)
	if err != nil {
		return nil, s.mapServiceError(op, err)
	}
	return models.FromDomainService(updated), nil
}

func (s *Service) deleteService(ctx context.Context, op string, id int64) error {
	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		return s.mapServiceError(op, err)
	}
	return nil
}

func (s *Service) mapServiceError(op string, err error) error {
	switch {
	case errors.Is(err, servicesRepo.ErrServiceNotFound):
		s.logger.Warn("%s: service not found", op)
		return ErrServiceNotFound
	case errors.Is(err, servicesRepo.ErrInvalidReference):
		s.logger.Warn("%s: unknown category or city", op)
		return fmt.Errorf("%w: category or city does not exist", ErrInvalidInput)
	case errors.Is(err, servicesRepo.ErrServiceInUse):
		s.logger.Warn("%s: service has bookings", op)
		return fmt.Errorf("%w: service has bookings", ErrInUse)
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func serviceFromRequest(req *models.ServiceRequest) (*domain.Service, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.CategoryID <= 0 || req.CityID <= 0 {
		return nil, fmt.Errorf("%w: categoryId and cityId are required", ErrInvalidInput)
	}
	if !req.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}

	status := domain.ServiceActive
	if req.Status != nil {
		status = domain.ServiceStatus(*req.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
	}

	features := make([]string, 0, len(req.Features))
	for _, f := range req.Features {
		if f = strings.TrimSpace(f); f != "" {
			features = append(features, f)
		}
	}

	return &domain.Service{
		Name:        name,
		CategoryID:  req.CategoryID,
		CityID:      req.CityID,
		Price:       req.Price.Round(domain.MoneyPlaces),
		ImageURL:    req.ImageURL,
		Description: req.Description,
		Features:    features,
		Status:      status,
	}, nil
}

func buildFilter(req *models.ListServicesRequest) (domain.ServicesFilter, error) {
	var filter domain.ServicesFilter
	if req == nil {
		return filter, nil
	}

	filter.CategoryID = req.CategoryID
	filter.CityID = req.CityID
	filter.VendorID = req.VendorID

	if req.Status != nil {
		status := domain.ServiceStatus(*req.Status)
		if !status.IsValid() {
			return filter, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	if req.Search != nil {
		if q := strings.TrimSpace(*req.Search); q != "" {
			filter.Search = &q
		}
	}

	return filter, nil
}
