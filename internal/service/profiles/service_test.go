package profiles

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/internal/infra/cache"
	profileRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/profile"
	vendorRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/vendorprofile"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/profiles/models"
	"github.com/m04kA/SMC-MarketplaceService/pkg/logger"
	"github.com/m04kA/SMC-MarketplaceService/pkg/ptr"
)

type fakeRepo struct {
	profiles map[int64]*domain.Profile
	getCalls int
	nextID   int64
}

func newFakeRepo(profiles ...*domain.Profile) *fakeRepo {
	r := &fakeRepo{profiles: map[int64]*domain.Profile{}, nextID: 100}
	for _, p := range profiles {
		r.profiles[p.ID] = p
	}
	return r
}

func (f *fakeRepo) Create(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	for _, existing := range f.profiles {
		if existing.Email == p.Email {
			return nil, profileRepo.ErrEmailAlreadyExists
		}
	}
	f.nextID++
	p.ID = f.nextID
	f.profiles[p.ID] = p
	return p, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Profile, error) {
	f.getCalls++
	if p, ok := f.profiles[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, profileRepo.ErrProfileNotFound
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*domain.Profile, error) {
	for _, p := range f.profiles {
		if p.Email == email {
			copied := *p
			return &copied, nil
		}
	}
	return nil, profileRepo.ErrProfileNotFound
}

func (f *fakeRepo) List(context.Context, *domain.Role) ([]*domain.Profile, error) { return nil, nil }

func (f *fakeRepo) Update(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	existing, ok := f.profiles[p.ID]
	if !ok {
		return nil, profileRepo.ErrProfileNotFound
	}
	existing.Name = p.Name
	existing.Phone = p.Phone
	copied := *existing
	return &copied, nil
}

func (f *fakeRepo) UpdateRole(_ context.Context, id int64, role domain.Role) error {
	existing, ok := f.profiles[id]
	if !ok {
		return profileRepo.ErrProfileNotFound
	}
	existing.Role = role
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.profiles[id]; !ok {
		return profileRepo.ErrProfileNotFound
	}
	delete(f.profiles, id)
	return nil
}

type memoryCache struct {
	data map[string][]byte
}

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

type fakeVendors struct {
	byUser      map[int64]int64
	deactivated []int64
}

func (f *fakeVendors) DeactivateByUserID(_ context.Context, userID int64) (int64, error) {
	id, ok := f.byUser[userID]
	if !ok {
		return 0, vendorRepo.ErrVendorNotFound
	}
	f.deactivated = append(f.deactivated, id)
	return id, nil
}

type fakeServices struct {
	deactivatedFor []int64
}

func (f *fakeServices) DeactivateByVendor(_ context.Context, vendorID int64) (int64, error) {
	f.deactivatedFor = append(f.deactivatedFor, vendorID)
	return 2, nil
}

type passTx struct{ calls int }

func (p *passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

func newTestService(repo *fakeRepo, c Cache) *Service {
	return NewService(repo, &fakeVendors{byUser: map[int64]int64{}}, &fakeServices{}, &passTx{}, c, logger.NewNop())
}

func TestService_GetRole_UsesCache(t *testing.T) {
	repo := newFakeRepo(&domain.Profile{ID: 1, Email: "a@b.c", Name: "A", Role: domain.RoleUser})
	s := newTestService(repo, &memoryCache{data: map[string][]byte{}})
	ctx := context.Background()

	role, err := s.GetRole(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, role)

	_, err = s.GetRole(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.getCalls)

	// смена роли сбрасывает кэш
	_, err = s.AdminUpdate(ctx, 1, &models.AdminUpdateUserRequest{
		UpdateProfileRequest: models.UpdateProfileRequest{Name: "A"},
		Role:                 ptr.Ptr("admin"),
	})
	require.NoError(t, err)

	role, err = s.GetRole(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, role)
}

func TestService_GetRole_WithoutCache(t *testing.T) {
	repo := newFakeRepo(&domain.Profile{ID: 2, Email: "x@y.z", Name: "X", Role: domain.RoleAdmin})
	var noCache *cache.Cache
	s := newTestService(repo, noCache)

	role, err := s.GetRole(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, role)

	_, err = s.GetRole(context.Background(), 3)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestService_Register(t *testing.T) {
	repo := newFakeRepo()
	s := newTestService(repo, &memoryCache{data: map[string][]byte{}})
	ctx := context.Background()

	created, err := s.Register(ctx, &models.RegisterRequest{Email: " Buyer@Example.com ", Name: "Buyer"})
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", created.Email)
	assert.Equal(t, "user", created.Role)

	_, err = s.Register(ctx, &models.RegisterRequest{Email: "buyer@example.com", Name: "Again"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	_, err = s.Register(ctx, &models.RegisterRequest{Email: "not-an-email", Name: "Bad"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_EnsureAdmin_PromotesExisting(t *testing.T) {
	repo := newFakeRepo(&domain.Profile{ID: 5, Email: "boss@example.com", Name: "Boss", Role: domain.RoleUser})
	s := newTestService(repo, &memoryCache{data: map[string][]byte{}})

	admin, err := s.EnsureAdmin(context.Background(), "boss@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, int64(5), admin.ID)
	assert.Equal(t, domain.RoleAdmin, repo.profiles[5].Role)
}

func TestService_AdminUpdate_Roles(t *testing.T) {
	ctx := context.Background()

	t.Run("vendor role only through application", func(t *testing.T) {
		repo := newFakeRepo(&domain.Profile{ID: 5, Email: "u@example.com", Name: "U", Role: domain.RoleUser})
		vendors := &fakeVendors{byUser: map[int64]int64{}}
		tx := &passTx{}
		s := NewService(repo, vendors, &fakeServices{}, tx, &memoryCache{data: map[string][]byte{}}, logger.NewNop())

		_, err := s.AdminUpdate(ctx, 5, &models.AdminUpdateUserRequest{
			UpdateProfileRequest: models.UpdateProfileRequest{Name: "Renamed"},
			Role:                 ptr.Ptr("vendor"),
		})
		assert.ErrorIs(t, err, ErrVendorRoleRequiresApplication)
		assert.Equal(t, domain.RoleUser, repo.profiles[5].Role)
		assert.Equal(t, "U", repo.profiles[5].Name)
		assert.Zero(t, tx.calls)
	})

	t.Run("demoted vendor is deactivated with services", func(t *testing.T) {
		repo := newFakeRepo(&domain.Profile{ID: 6, Email: "v@example.com", Name: "V", Role: domain.RoleVendor})
		vendors := &fakeVendors{byUser: map[int64]int64{6: 40}}
		services := &fakeServices{}
		tx := &passTx{}
		s := NewService(repo, vendors, services, tx, &memoryCache{data: map[string][]byte{}}, logger.NewNop())

		updated, err := s.AdminUpdate(ctx, 6, &models.AdminUpdateUserRequest{
			UpdateProfileRequest: models.UpdateProfileRequest{Name: "V"},
			Role:                 ptr.Ptr("user"),
		})
		require.NoError(t, err)
		assert.Equal(t, "user", updated.Role)
		assert.Equal(t, domain.RoleUser, repo.profiles[6].Role)
		assert.Equal(t, []int64{40}, vendors.deactivated)
		assert.Equal(t, []int64{40}, services.deactivatedFor)
		assert.Equal(t, 1, tx.calls)
	})

	t.Run("vendor keeps vendor role", func(t *testing.T) {
		repo := newFakeRepo(&domain.Profile{ID: 7, Email: "k@example.com", Name: "K", Role: domain.RoleVendor})
		vendors := &fakeVendors{byUser: map[int64]int64{7: 41}}
		s := NewService(repo, vendors, &fakeServices{}, &passTx{}, &memoryCache{data: map[string][]byte{}}, logger.NewNop())

		_, err := s.AdminUpdate(ctx, 7, &models.AdminUpdateUserRequest{
			UpdateProfileRequest: models.UpdateProfileRequest{Name: "K2"},
			Role:                 ptr.Ptr("vendor"),
		})
		require.NoError(t, err)
		assert.Empty(t, vendors.deactivated)
	})

	t.Run("unknown profile", func(t *testing.T) {
		s := newTestService(newFakeRepo(), &memoryCache{data: map[string][]byte{}})

		_, err := s.AdminUpdate(ctx, 99, &models.AdminUpdateUserRequest{
			UpdateProfileRequest: models.UpdateProfileRequest{Name: "X"},
		})
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})
}
