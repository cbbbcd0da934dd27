package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	categoryRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/category"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/catalog/models"
)

// ListCategories возвращает категории
// Публичный список (onlyActive) кэшируется
func (s *Service) ListCategories(ctx context.Context, onlyActive bool) (*models.CategoryListResponse, error) {
	if onlyActive {
		var cached models.CategoryListResponse
		found, err := s.cache.GetJSON(ctx, cacheKeyActiveCategories, &cached)
		if err != nil {
			s.logger.Warn("ListCategories: cache read failed: %v", err)
		}
		if found {
			return &cached, nil
		}
	}

	categories, err := s.categoryRepo.List(ctx, onlyActive)
	if err != nil {
		s.logger.Error("ListCategories: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListCategories - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainCategoryList(categories)

	if onlyActive {
		if err := s.cache.SetJSON(ctx, cacheKeyActiveCategories, resp); err != nil {
			s.logger.Warn("ListCategories: cache write failed: %v", err)
		}
	}

	return resp, nil
}

// CreateCategory создает категорию
func (s *Service) CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.CategoryResponse, error) {
	category, err := categoryFromRequest(req)
	if err != nil {
		return nil, err
	}
	s.logger.Info("CreateCategory: name=%s, slug=%s", category.Name, category.Slug)

	created, err := s.categoryRepo.Create(ctx, category)
	if err != nil {
		return nil, s.mapCategoryError("CreateCategory", err)
	}

	s.invalidate(ctx, cacheKeyActiveCategories)
	resp := models.FromDomainCategory(created)
	return &resp, nil
}

// UpdateCategory обновляет категорию
func (s *Service) UpdateCategory(ctx context.Context, id int64, req *models.CategoryRequest) (*models.CategoryResponse, error) {
	category, err := categoryFromRequest(req)
	if err != nil {
		return nil, err
	}
	category.ID = id
	s.logger.Info("UpdateCategory: id=%d", id)

	updated, err := s.categoryRepo.Update(ctx, category)
	if err != nil {
		return nil, s.mapCategoryError("UpdateCategory", err)
	}

	s.invalidate(ctx, cacheKeyActiveCategories)
	resp := models.FromDomainCategory(updated)
	return &resp, nil
}

// DeleteCategory удаляет категорию без услуг
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	s.logger.Info("DeleteCategory: id=%d", id)

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return s.mapCategoryError("DeleteCategory", err)
	}

	s.invalidate(ctx, cacheKeyActiveCategories)
	return nil
}

func (s *Service) mapCategoryError(op string, err error) error {
	switch {
	case errors.Is(err, categoryRepo.ErrCategoryNotFound):
		s.logger.Warn("%s: category not found", op)
		return ErrCategoryNotFound
	case errors.Is(err, categoryRepo.ErrSlugAlreadyExists):
		s.logger.Warn("%s: slug already exists", op)
		return fmt.Errorf("%w: category slug", ErrAlreadyExists)
	case errors.Is(err, categoryRepo.ErrCategoryInUse):
		s.logger.Warn("%s: category is used by services", op)
		return fmt.Errorf("%w: category has services", ErrInUse)
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func categoryFromRequest(req *models.CategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	slug := Slugify(req.Slug)
	if slug == "" {
		slug = Slugify(name)
	}
	if slug == "" {
		return nil, fmt.Errorf("%w: slug must contain letters or digits", ErrInvalidInput)
	}

	category := &domain.Category{
		Name:        name,
		Slug:        slug,
		Icon:        req.Icon,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	return category, nil
}

// Slugify приводит строку к виду "salon-and-spa"
func Slugify(s string) string {
	var b strings.Builder
	dash := false

	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r >= 'а' && r <= 'я', r == 'ё':
			b.WriteRune(r)
			dash = false
		default:
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

func (s *Service) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("invalidate: cache delete failed: %v", err)
	}
}
