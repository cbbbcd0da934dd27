package vendorapplications

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	appRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/vendorapplication"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/vendorapplications/models"
	"github.com/m04kA/SMC-MarketplaceService/pkg/logger"
	"github.com/m04kA/SMC-MarketplaceService/pkg/ptr"
)

type memoryRepo struct {
	apps   map[int64]*domain.VendorApplication
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{apps: map[int64]*domain.VendorApplication{}}
}

func (r *memoryRepo) Create(_ context.Context, app *domain.VendorApplication) (*domain.VendorApplication, error) {
	r.nextID++
	app.ID = r.nextID
	app.Status = domain.ApplicationPending
	r.apps[app.ID] = app
	return app, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id int64) (*domain.VendorApplication, error) {
	app, ok := r.apps[id]
	if !ok {
		return nil, appRepo.ErrApplicationNotFound
	}
	return app, nil
}

func (r *memoryRepo) GetLatestByUserID(_ context.Context, userID int64) (*domain.VendorApplication, error) {
	var latest *domain.VendorApplication
	for _, app := range r.apps {
		if app.UserID == userID && (latest == nil || app.ID > latest.ID) {
			latest = app
		}
	}
	if latest == nil {
		return nil, appRepo.ErrApplicationNotFound
	}
	return latest, nil
}

func (r *memoryRepo) HasOpenApplication(_ context.Context, userID int64) (bool, error) {
	for _, app := range r.apps {
		if app.UserID == userID && app.Status != domain.ApplicationRejected {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepo) List(context.Context, *domain.ApplicationStatus) ([]*domain.VendorApplication, error) {
	return nil, nil
}

func (r *memoryRepo) MarkReviewed(
	_ context.Context,
	id int64,
	status domain.ApplicationStatus,
	reviewerID int64,
	reviewedAt time.Time,
	reason *string,
) error {
	app, ok := r.apps[id]
	if !ok {
		return appRepo.ErrApplicationNotFound
	}
	if app.Status != domain.ApplicationPending {
		return appRepo.ErrAlreadyReviewed
	}
	app.Status = status
	app.ReviewedBy = &reviewerID
	app.ReviewedAt = &reviewedAt
	app.RejectionReason = reason
	return nil
}

type staticRoles map[int64]domain.Role

func (r staticRoles) GetRole(_ context.Context, userID int64) (domain.Role, error) {
	return r[userID], nil
}

type countingMetrics struct{ reviewed map[string]int }

func (m *countingMetrics) IncVendorApplicationReviewed(decision string) { m.reviewed[decision]++ }

func validRequest() *models.SubmitApplicationRequest {
	return &models.SubmitApplicationRequest{
		BusinessName:        "Glow Studio",
		BusinessType:        "salon",
		BusinessAddress:     "Park st. 5",
		BusinessDescription: "Hair and makeup",
	}
}

func newService(repo *memoryRepo, roles staticRoles) (*Service, *countingMetrics) {
	m := &countingMetrics{reviewed: map[string]int{}}
	return NewService(repo, roles, m, logger.NewNop()), m
}

func TestService_Submit(t *testing.T) {
	roles := staticRoles{1: domain.RoleUser, 2: domain.RoleVendor}

	t.Run("second application is refused while first is pending", func(t *testing.T) {
		s, _ := newService(newMemoryRepo(), roles)

		app, err := s.Submit(context.Background(), 1, validRequest())
		require.NoError(t, err)
		assert.Equal(t, "pending", app.Status)

		_, err = s.Submit(context.Background(), 1, validRequest())
		assert.ErrorIs(t, err, ErrApplicationExists)
	})

	t.Run("vendor cannot apply", func(t *testing.T) {
		s, _ := newService(newMemoryRepo(), roles)

		_, err := s.Submit(context.Background(), 2, validRequest())
		assert.ErrorIs(t, err, ErrAlreadyVendor)
	})

	t.Run("resubmit after rejection", func(t *testing.T) {
		repo := newMemoryRepo()
		s, _ := newService(repo, roles)

		first, err := s.Submit(context.Background(), 1, validRequest())
		require.NoError(t, err)
		_, err = s.Reject(context.Background(), first.ID, 9, nil)
		require.NoError(t, err)

		second, err := s.Submit(context.Background(), 1, validRequest())
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("missing business name", func(t *testing.T) {
		s, _ := newService(newMemoryRepo(), roles)

		req := validRequest()
		req.BusinessName = "  "
		_, err := s.Submit(context.Background(), 1, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Reject(t *testing.T) {
	repo := newMemoryRepo()
	s, m := newService(repo, staticRoles{1: domain.RoleUser})
	ctx := context.Background()

	app, err := s.Submit(ctx, 1, validRequest())
	require.NoError(t, err)

	rejected, err := s.Reject(ctx, app.ID, 9, &models.RejectApplicationRequest{Reason: ptr.Ptr(" incomplete documents ")})
	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Status)
	assert.Equal(t, ptr.Ptr(int64(9)), rejected.ReviewedBy)
	assert.Equal(t, ptr.Ptr("incomplete documents"), rejected.RejectionReason)
	assert.Equal(t, 1, m.reviewed["rejected"])

	_, err = s.Reject(ctx, app.ID, 9, nil)
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	assert.Equal(t, 1, m.reviewed["rejected"])

	_, err = s.Reject(ctx, 404, 9, nil)
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestService_Reject_ReasonLength(t *testing.T) {
	ctx := context.Background()

	t.Run("cyrillic reason counted in characters", func(t *testing.T) {
		s, _ := newService(newMemoryRepo(), staticRoles{1: domain.RoleUser})
		app, err := s.Submit(ctx, 1, validRequest())
		require.NoError(t, err)

		reason := strings.Repeat("я", 300)
		rejected, err := s.Reject(ctx, app.ID, 9, &models.RejectApplicationRequest{Reason: &reason})
		require.NoError(t, err)
		assert.Equal(t, &reason, rejected.RejectionReason)
	})

	t.Run("too long", func(t *testing.T) {
		s, _ := newService(newMemoryRepo(), staticRoles{1: domain.RoleUser})
		app, err := s.Submit(ctx, 1, validRequest())
		require.NoError(t, err)

		reason := strings.Repeat("я", domain.MaxRejectionReasonLength+1)
		_, err = s.Reject(ctx, app.ID, 9, &models.RejectApplicationRequest{Reason: &reason})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
