package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	cityRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/city"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/catalog/models"
)

// ListCities возвращает районы
// Публичный список (onlyActive) кэшируется
func (s *Service) ListCities(ctx context.Context, onlyActive bool) (*models.CityListResponse, error) {
	if onlyActive {
		var cached models.CityListResponse
		found, err := s.cache.GetJSON(ctx, cacheKeyActiveCities, &cached)
		if err != nil {
			s.logger.Warn("ListCities: cache read failed: %v", err)
		}
		if found {
			return &cached, nil
		}
	}

	cities, err := s.cityRepo.List(ctx, onlyActive)
	if err != nil {
		s.logger.Error("ListCities: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListCities - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainCityList(cities)

	if onlyActive {
		if err := s.cache.SetJSON(ctx, cacheKeyActiveCities, resp); err != nil {
			s.logger.Warn("ListCities: cache write failed: %v", err)
		}
	}

	return resp, nil
}

// CreateCity создает район
func (s *Service) CreateCity(ctx context.Context, req *models.CityRequest) (*models.CityResponse, error) {
	city, err := cityFromRequest(req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("CreateCity: name=%s, state=%s", city.Name, city.State)

	created, err := s.cityRepo.Create(ctx, city)
	if err != nil {
		return nil, s.mapCityError("CreateCity", err)
	}

	s.invalidate(ctx, cacheKeyActiveCities)
	resp := models.FromDomainCity(created)
	return &resp, nil
}

// UpdateCity обновляет район
func (s *Service) UpdateCity(ctx context.Context, id int64, req *models.CityRequest) (*models.CityResponse, error) {
	city, err := cityFromRequest(req)
	if err != nil {
		return nil, err
	}
	city.ID = id
	s.logger.Info("UpdateCity: id=%d", id)

	updated, err := s.cityRepo.Update(ctx, city)
	if err != nil {
		return nil, s.mapCityError("UpdateCity", err)
	}

	s.invalidate(ctx, cacheKeyActiveCities)
	resp := models.FromDomainCity(updated)
	return &resp, nil
}

// DeleteCity удаляет район без услуг
func (s *Service) DeleteCity(ctx context.Context, id int64) error {
	s.logger.Info("DeleteCity: id=%d", id)

	if err := s.cityRepo.Delete(ctx, id); err != nil {
		return s.mapCityError("DeleteCity", err)
	}

	s.invalidate(ctx, cacheKeyActiveCities)
	return nil
}

func (s *Service) mapCityError(op string, err error) error {
	switch {
	case errors.Is(err, cityRepo.ErrCityNotFound):
		s.logger.Warn("%s: city not found", op)
		return ErrCityNotFound
	case errors.Is(err, cityRepo.ErrCityAlreadyExists):
		s.logger.Warn("%s: city already exists", op)
		return fmt.Errorf("%w: city", ErrAlreadyExists)
	case errors.Is(err, cityRepo.ErrCityInUse):
		s.logger.Warn("%s: city is used by services", op)
		return fmt.Errorf("%w: city has services", ErrInUse)
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func cityFromRequest(req *models.CityRequest) (*domain.City, error) {
	name := strings.TrimSpace(req.Name)
	state := strings.TrimSpace(req.State)
	if name == "" || state == "" {
		return nil, fmt.Errorf("%w: name and state are required", ErrInvalidInput)
	}

	city := &domain.City{Name: name, State: state, IsActive: true}
	if req.IsActive != nil {
		city.IsActive = *req.IsActive
	}

	return city, nil
}
