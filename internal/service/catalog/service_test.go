package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	categoryRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/category"
	servicesRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/services"
	vendorRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/vendorprofile"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/catalog/models"
	"github.com/m04kA/SMC-MarketplaceService/pkg/logger"
	"github.com/m04kA/SMC-MarketplaceService/pkg/ptr"
)

type fakeCategories struct {
	items     []*domain.Category
	listCalls int
}

func (f *fakeCategories) Create(_ context.Context, c *domain.Category) (*domain.Category, error) {
	for _, existing := range f.items {
		if existing.Slug == c.Slug {
			return nil, categoryRepo.ErrSlugAlreadyExists
		}
	}
	c.ID = int64(len(f.items) + 1)
	f.items = append(f.items, c)
	return c, nil
}

func (f *fakeCategories) GetByID(context.Context, int64) (*domain.Category, error) {
	return nil, categoryRepo.ErrCategoryNotFound
}

func (f *fakeCategories) List(_ context.Context, onlyActive bool) ([]*domain.Category, error) {
	f.listCalls++
	var res []*domain.Category
	for _, c := range f.items {
		if !onlyActive || c.IsActive {
			res = append(res, c)
		}
	}
	return res, nil
}

func (f *fakeCategories) Update(context.Context, *domain.Category) (*domain.Category, error) {
	return nil, categoryRepo.ErrCategoryNotFound
}

func (f *fakeCategories) Delete(context.Context, int64) error {
	return categoryRepo.ErrCategoryInUse
}

type fakeCities struct{}

func (fakeCities) Create(_ context.Context, c *domain.City) (*domain.City, error) { return c, nil }
func (fakeCities) GetByID(context.Context, int64) (*domain.City, error)          { return nil, nil }
func (fakeCities) List(context.Context, bool) ([]*domain.City, error)            { return nil, nil }
func (fakeCities) Update(_ context.Context, c *domain.City) (*domain.City, error) { return c, nil }
func (fakeCities) Delete(context.Context, int64) error                           { return nil }

type fakeServices struct {
	items    map[int64]*domain.Service
	lastList domain.ServicesFilter
}

func (f *fakeServices) Create(_ context.Context, s *domain.Service) (*domain.Service, error) {
	s.ID = int64(len(f.items) + 1)
	f.items[s.ID] = s
	return s, nil
}

func (f *fakeServices) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	if s, ok := f.items[id]; ok {
		return s, nil
	}
	return nil, servicesRepo.ErrServiceNotFound
}

func (f *fakeServices) List(_ context.Context, filter domain.ServicesFilter) ([]*domain.Service, error) {
	f.lastList = filter
	return nil, nil
}

func (f *fakeServices) Update(_ context.Context, s *domain.Service) (*domain.Service, error) {
	if _, ok := f.items[s.ID]; !ok {
		return nil, servicesRepo.ErrServiceNotFound
	}
	f.items[s.ID] = s
	return s, nil
}

func (f *fakeServices) Delete(_ context.Context, id int64) error {
	delete(f.items, id)
	return nil
}

type fakeVendors map[int64]*domain.VendorProfile

func (f fakeVendors) GetByUserID(_ context.Context, userID int64) (*domain.VendorProfile, error) {
	if v, ok := f[userID]; ok {
		return v, nil
	}
	return nil, vendorRepo.ErrVendorNotFound
}

type memoryCache struct{ data map[string][]byte }

func (c *memoryCache) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) SetJSON(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	c.data[key] = raw
	return err
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func newTestService(categories *fakeCategories, services *fakeServices, vendors fakeVendors) *Service {
	return NewService(categories, fakeCities{}, services, vendors, &memoryCache{data: map[string][]byte{}}, logger.NewNop())
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Salon & Spa", "salon-spa"},
		{"  Car Rentals  ", "car-rentals"},
		{"Decor--2024!", "decor-2024"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestService_ListCategories_CachedUntilWrite(t *testing.T) {
	categories := &fakeCategories{items: []*domain.Category{{ID: 1, Name: "Salons", Slug: "salons", IsActive: true}}}
	s := newTestService(categories, &fakeServices{items: map[int64]*domain.Service{}}, fakeVendors{})
	ctx := context.Background()

	first, err := s.ListCategories(ctx, true)
	require.NoError(t, err)
	require.Len(t, first.Categories, 1)

	_, err = s.ListCategories(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 1, categories.listCalls)

	created, err := s.CreateCategory(ctx, &models.CategoryRequest{Name: "Car Rentals"})
	require.NoError(t, err)
	assert.Equal(t, "car-rentals", created.Slug)

	after, err := s.ListCategories(ctx, true)
	require.NoError(t, err)
	assert.Len(t, after.Categories, 2)
	assert.Equal(t, 2, categories.listCalls)

	_, err = s.CreateCategory(ctx, &models.CategoryRequest{Name: "Car rentals!"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestService_DeleteCategory_InUse(t *testing.T) {
	s := newTestService(&fakeCategories{}, &fakeServices{items: map[int64]*domain.Service{}}, fakeVendors{})

	err := s.DeleteCategory(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInUse)
}

func TestService_VendorServices_Ownership(t *testing.T) {
	services := &fakeServices{items: map[int64]*domain.Service{}}
	vendors := fakeVendors{
		10: {ID: 1, UserID: 10},
		20: {ID: 2, UserID: 20},
	}
	s := newTestService(&fakeCategories{}, services, vendors)
	ctx := context.Background()

	req := &models.ServiceRequest{
		Name:       "Bridal makeup",
		CategoryID: 1,
		CityID:     1,
		Price:      decimal.RequireFromString("2500.005"),
		Features:   []string{" hair ", ""},
	}

	created, err := s.CreateVendorService(ctx, 10, req)
	require.NoError(t, err)
	assert.Equal(t, ptr.Ptr(int64(1)), created.VendorID)
	assert.False(t, created.AdminCreated)
	assert.Equal(t, "2500.01", created.Price)
	assert.Equal(t, []string{"hair"}, created.Features)

	_, err = s.UpdateVendorService(ctx, 20, created.ID, req)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = s.DeleteVendorService(ctx, 20, created.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = s.CreateVendorService(ctx, 30, req)
	assert.ErrorIs(t, err, ErrVendorNotFound)

	require.NoError(t, s.DeleteVendorService(ctx, 10, created.ID))
	assert.Empty(t, services.items)
}

func TestService_PublicCatalog(t *testing.T) {
	services := &fakeServices{items: map[int64]*domain.Service{
		1: {ID: 1, Name: "Hidden", Status: domain.ServiceInactive, Price: decimal.NewFromInt(10)},
	}}
	s := newTestService(&fakeCategories{}, services, fakeVendors{})
	ctx := context.Background()

	_, err := s.GetPublicService(ctx, 1)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = s.ListPublicServices(ctx, &models.ListServicesRequest{Status: ptr.Ptr("inactive"), Search: ptr.Ptr("  ")})
	require.NoError(t, err)
	require.NotNil(t, services.lastList.Status)
	assert.Equal(t, domain.ServiceActive, *services.lastList.Status)
	assert.Nil(t, services.lastList.Search)

	_, err = s.AdminCreateService(ctx, &models.ServiceRequest{Name: "Free", CategoryID: 1, CityID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
