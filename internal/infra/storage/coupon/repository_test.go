package coupon

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceService/pkg/ptr"
)

func newRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	wrapped := dbmetrics.Wrap(db, nil, "test")
	return NewRepository(wrapped), wrapped, mock
}

func couponRow(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(couponColumns).AddRow(
		int64(1), "SAVE10", nil, "percentage", "10.00", "500.00", "100.00",
		int64(5), int64(2), true, nil, now, now,
	)
}

func TestRepository_GetByCode(t *testing.T) {
	now := time.Now()

	t.Run("found without lock outside transaction", func(t *testing.T) {
		repo, _, mock := newRepo(t)

		mock.ExpectQuery(`FROM coupons WHERE code = \$1$`).
			WithArgs("SAVE10").
			WillReturnRows(couponRow(now))

		coupon, err := repo.GetByCode(context.Background(), "SAVE10")
		require.NoError(t, err)

		assert.Equal(t, int64(1), coupon.ID)
		assert.Equal(t, domain.DiscountPercentage, coupon.DiscountType)
		assert.True(t, coupon.DiscountValue.Equal(decimal.NewFromInt(10)))
		require.NotNil(t, coupon.MaxDiscount)
		assert.True(t, coupon.MaxDiscount.Equal(decimal.NewFromInt(100)))
		require.NotNil(t, coupon.UsageLimit)
		assert.Equal(t, 5, *coupon.UsageLimit)
		assert.Equal(t, 2, coupon.UsedCount)
		assert.Nil(t, coupon.ExpiresAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("locks row inside transaction", func(t *testing.T) {
		repo, db, mock := newRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`FROM coupons WHERE code = \$1 FOR UPDATE`).
			WithArgs("SAVE10").
			WillReturnRows(couponRow(now))

		tx, err := db.BeginTx(context.Background(), nil)
		require.NoError(t, err)

		_, err = repo.GetByCode(dbmetrics.WithTx(context.Background(), tx), "SAVE10")
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, _, mock := newRepo(t)

		mock.ExpectQuery(`FROM coupons WHERE code`).
			WithArgs("NOPE").
			WillReturnRows(sqlmock.NewRows(couponColumns))

		_, err := repo.GetByCode(context.Background(), "NOPE")
		assert.ErrorIs(t, err, ErrCouponNotFound)
	})
}

func TestRepository_IncrementUsage(t *testing.T) {
	guarded := regexp.QuoteMeta("UPDATE coupons SET used_count = used_count + 1") +
		`.*WHERE .*` + regexp.QuoteMeta("(usage_limit IS NULL OR used_count < usage_limit)")

	t.Run("incremented", func(t *testing.T) {
		repo, _, mock := newRepo(t)

		mock.ExpectExec(guarded).
			WithArgs(int64(1), true).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.IncrementUsage(context.Background(), 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("limit reached", func(t *testing.T) {
		repo, _, mock := newRepo(t)

		mock.ExpectExec(guarded).
			WithArgs(int64(1), true).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.IncrementUsage(context.Background(), 1), ErrUsageLimitReached)
	})
}

func TestRepository_Create(t *testing.T) {
	t.Run("duplicate code", func(t *testing.T) {
		repo, _, mock := newRepo(t)

		mock.ExpectQuery(`INSERT INTO coupons`).
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Create(context.Background(), &domain.Coupon{
			Code:          "SAVE10",
			DiscountType:  domain.DiscountFlat,
			DiscountValue: decimal.NewFromInt(50),
			IsActive:      true,
		})
		assert.ErrorIs(t, err, ErrCodeAlreadyExists)
	})

	t.Run("created", func(t *testing.T) {
		repo, _, mock := newRepo(t)
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO coupons .* RETURNING id, used_count, created_at, updated_at`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "used_count", "created_at", "updated_at"}).
				AddRow(int64(7), int64(0), now, now))

		created, err := repo.Create(context.Background(), &domain.Coupon{
			Code:          "FLAT50",
			DiscountType:  domain.DiscountFlat,
			DiscountValue: decimal.NewFromInt(50),
			IsActive:      true,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(7), created.ID)
		assert.Equal(t, now, created.CreatedAt)
	})
}

func TestRepository_Update_LimitBelowUsed(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`UPDATE coupons SET .* WHERE id = \$\d+ RETURNING`).
		WillReturnError(&pq.Error{Code: "23514"})

	_, err := repo.Update(context.Background(), 1, &domain.Coupon{
		Code:          "SAVE10",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(10),
		UsageLimit:    ptr.Ptr(1),
		IsActive:      true,
	})
	assert.ErrorIs(t, err, ErrUsageLimitBelowUsed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DeactivateExpired(t *testing.T) {
	repo, _, mock := newRepo(t)
	now := time.Now()

	mock.ExpectExec(`UPDATE coupons SET is_active = \$1.*expires_at IS NOT NULL.*expires_at < \$3`).
		WithArgs(false, true, now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeactivateExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`DELETE FROM coupons WHERE id = \$1`).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 9), ErrCouponNotFound)
}
