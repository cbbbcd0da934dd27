package approve_vendor_application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	profileRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/profile"
	appRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/vendorapplication"
	vendorRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/vendorprofile"
	"github.com/m04kA/SMC-MarketplaceService/pkg/logger"
)

// db общее состояние фейковых репозиториев с откатом по транзакции
type db struct {
	apps      map[int64]domain.VendorApplication
	vendors   map[int64]domain.VendorProfile // по user_id
	roles     map[int64]domain.Role
	vendorErr error
}

func (d *db) GetByID(_ context.Context, id int64) (*domain.VendorApplication, error) {
	app, ok := d.apps[id]
	if !ok {
		return nil, appRepo.ErrApplicationNotFound
	}
	return &app, nil
}

func (d *db) MarkReviewed(_ context.Context, id int64, status domain.ApplicationStatus, reviewerID int64, at time.Time, reason *string) error {
	app, ok := d.apps[id]
	if !ok {
		return appRepo.ErrApplicationNotFound
	}
	if app.Status != domain.ApplicationPending {
		return appRepo.ErrAlreadyReviewed
	}
	app.Status = status
	app.ReviewedBy = &reviewerID
	app.ReviewedAt = &at
	app.RejectionReason = reason
	d.apps[id] = app
	return nil
}

func (d *db) Create(_ context.Context, v *domain.VendorProfile) (*domain.VendorProfile, error) {
	if d.vendorErr != nil {
		return nil, d.vendorErr
	}
	if _, ok := d.vendors[v.UserID]; ok {
		return nil, vendorRepo.ErrVendorAlreadyExists
	}
	v.ID = int64(len(d.vendors) + 1)
	d.vendors[v.UserID] = *v
	return v, nil
}

func (d *db) UpdateRole(_ context.Context, id int64, role domain.Role) error {
	if _, ok := d.roles[id]; !ok {
		return profileRepo.ErrProfileNotFound
	}
	d.roles[id] = role
	return nil
}

type snapshotTx struct{ d *db }

func (tx snapshotTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	apps := make(map[int64]domain.VendorApplication, len(tx.d.apps))
	for k, v := range tx.d.apps {
		apps[k] = v
	}
	vendors := make(map[int64]domain.VendorProfile, len(tx.d.vendors))
	for k, v := range tx.d.vendors {
		vendors[k] = v
	}
	roles := make(map[int64]domain.Role, len(tx.d.roles))
	for k, v := range tx.d.roles {
		roles[k] = v
	}

	if err := fn(ctx); err != nil {
		tx.d.apps, tx.d.vendors, tx.d.roles = apps, vendors, roles
		return err
	}
	return nil
}

type recordingRoles struct{ invalidated []int64 }

func (r *recordingRoles) InvalidateRole(_ context.Context, userID int64) {
	r.invalidated = append(r.invalidated, userID)
}

type countingMetrics map[string]int

func (m countingMetrics) IncVendorApplicationReviewed(decision string) { m[decision]++ }

func newDB() *db {
	return &db{
		apps: map[int64]domain.VendorApplication{
			1: {ID: 1, UserID: 50, BusinessName: "Glow Studio", BusinessType: "salon", Status: domain.ApplicationPending},
			2: {ID: 2, UserID: 51, BusinessName: "Done", Status: domain.ApplicationRejected},
			3: {ID: 3, UserID: 52, BusinessName: "Ghost", Status: domain.ApplicationPending},
		},
		vendors: map[int64]domain.VendorProfile{},
		roles:   map[int64]domain.Role{50: domain.RoleUser, 51: domain.RoleUser},
	}
}

func newUseCase(d *db) (*UseCase, *recordingRoles, countingMetrics) {
	roles := &recordingRoles{}
	m := countingMetrics{}
	return NewUseCase(d, d, d, roles, snapshotTx{d}, m, logger.NewNop()), roles, m
}

func TestExecute_Approves(t *testing.T) {
	d := newDB()
	uc, roles, m := newUseCase(d)

	resp, err := uc.Execute(context.Background(), &Request{ApplicationID: 1, ReviewerID: 9})
	require.NoError(t, err)

	assert.Equal(t, domain.ApplicationApproved, resp.Application.Status)
	assert.Equal(t, int64(9), *resp.Application.ReviewedBy)

	vendor := d.vendors[50]
	assert.Equal(t, "Glow Studio", vendor.BusinessName)
	assert.True(t, vendor.TotalEarnings.IsZero())
	assert.Zero(t, vendor.TotalBookings)
	assert.True(t, vendor.IsActive)
	assert.Equal(t, domain.RoleVendor, d.roles[50])

	assert.Equal(t, []int64{50}, roles.invalidated)
	assert.Equal(t, 1, m["approved"])

	// повторное одобрение не имеет побочных эффектов
	_, err = uc.Execute(context.Background(), &Request{ApplicationID: 1, ReviewerID: 9})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	assert.Len(t, d.vendors, 1)
	assert.Equal(t, 1, m["approved"])
}

func TestExecute_Refused(t *testing.T) {
	tests := []struct {
		name  string
		appID int64
		prep  func(d *db)
		want  error
	}{
		{name: "rejected application", appID: 2, want: ErrAlreadyReviewed},
		{name: "unknown application", appID: 404, want: ErrApplicationNotFound},
		{name: "applicant deleted", appID: 3, want: ErrUserNotFound},
		{name: "vendor insert fails", appID: 1, prep: func(d *db) { d.vendorErr = errors.New("disk full") }, want: ErrInternal},
		{
			name:  "vendor profile already exists",
			appID: 1,
			prep:  func(d *db) { d.vendors[50] = domain.VendorProfile{ID: 1, UserID: 50} },
			want:  ErrVendorExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDB()
			if tt.prep != nil {
				tt.prep(d)
			}
			vendorsBefore := len(d.vendors)
			uc, roles, m := newUseCase(d)

			_, err := uc.Execute(context.Background(), &Request{ApplicationID: tt.appID, ReviewerID: 9})
			assert.ErrorIs(t, err, tt.want)

			// все записи откатываются, заявка остается в исходном статусе
			if app, ok := d.apps[tt.appID]; ok && tt.appID != 2 {
				assert.Equal(t, domain.ApplicationPending, app.Status)
			}
			assert.Len(t, d.vendors, vendorsBefore)
			assert.Equal(t, domain.RoleUser, d.roles[50])
			assert.Empty(t, roles.invalidated)
			assert.Zero(t, m["approved"])
		})
	}
}
