package coupon

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-MarketplaceService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceService/pkg/psqlbuilder"
)

var couponColumns = []string{
	"id",
	"code",
	"description",
	"discount_type",
	"discount_value",
	"min_amount",
	"max_discount",
	"usage_limit",
	"used_count",
	"is_active",
	"expires_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с купонами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория купонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый купон, код должен быть нормализован
func (r *Repository) Create(ctx context.Context, coupon *domain.Coupon) (*domain.Coupon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("coupons").
		Columns(
			"code",
			"description",
			"discount_type",
			"discount_value",
			"min_amount",
			"max_discount",
			"usage_limit",
			"is_active",
			"expires_at",
		).
		Values(
			coupon.Code,
			coupon.Description,
			coupon.DiscountType,
			coupon.DiscountValue,
			coupon.MinAmount,
			coupon.MaxDiscount,
			coupon.UsageLimit,
			coupon.IsActive,
			coupon.ExpiresAt,
		).
		Suffix("RETURNING id, used_count, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&coupon.ID,
		&coupon.UsedCount,
		&createdAt,
		&updatedAt,
	)

	if pgerr.IsUniqueViolation(err) {
		return nil, ErrCodeAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	coupon.CreatedAt = createdAt.Time
	coupon.UpdatedAt = updatedAt.Time

	return coupon, nil
}

// GetByID получает купон по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Coupon, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByCode получает купон по нормализованному коду
// Внутри транзакции строка блокируется (FOR UPDATE) до её завершения
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	return r.getOne(ctx, "GetByCode", squirrel.Eq{"code": code})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Coupon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(couponColumns...).
		From("coupons").
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	coupon, err := scanCoupon(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan coupon: %v", ErrScanRow, op, err)
	}

	return coupon, nil
}

// List возвращает все купоны, новые первыми
func (r *Repository) List(ctx context.Context) ([]*domain.Coupon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(couponColumns...).
		From("coupons").
		OrderBy("created_at DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	coupons := make([]*domain.Coupon, 0)
	for rows.Next() {
		coupon, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		coupons = append(coupons, coupon)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return coupons, nil
}

// Update обновляет условия купона (used_count не меняется)
func (r *Repository) Update(ctx context.Context, id int64, coupon *domain.Coupon) (*domain.Coupon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("coupons").
		Set("code", coupon.Code).
		Set("description", coupon.Description).
		Set("discount_type", coupon.DiscountType).
		Set("discount_value", coupon.DiscountValue).
		Set("min_amount", coupon.MinAmount).
		Set("max_discount", coupon.MaxDiscount).
		Set("usage_limit", coupon.UsageLimit).
		Set("is_active", coupon.IsActive).
		Set("expires_at", coupon.ExpiresAt).
		Set("updated_at", psqlbuilder.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(couponColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanCoupon(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCouponNotFound
	}
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrCodeAlreadyExists
	}
	// остальные CHECK ограничения проверяются сервисом до запроса
	if pgerr.IsCheckViolation(err) {
		return nil, ErrUsageLimitBelowUsed
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return updated, nil
}

// Delete удаляет купон
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("coupons").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCouponNotFound
	}

	return nil
}

// IncrementUsage атомарно увеличивает used_count, если лимит не исчерпан
// Ноль затронутых строк означает исчерпанный лимит или деактивированный купон
func (r *Repository) IncrementUsage(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("coupons").
		Set("used_count", psqlbuilder.Expr("used_count + 1")).
		Set("updated_at", psqlbuilder.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "is_active": true}).
		Where(squirrel.Or{
			squirrel.Eq{"usage_limit": nil},
			squirrel.Expr("used_count < usage_limit"),
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrUsageLimitReached
	}

	return nil
}

// DeactivateExpired выключает активные купоны с истекшим сроком действия
// Возвращает количество деактивированных купонов
func (r *Repository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("coupons").
		Set("is_active", false).
		Set("updated_at", psqlbuilder.Expr("NOW()")).
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.NotEq{"expires_at": nil}).
		Where(squirrel.Lt{"expires_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeactivateExpired - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeactivateExpired - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeactivateExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCoupon(row rowScanner) (*domain.Coupon, error) {
	var coupon domain.Coupon
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&coupon.ID,
		&coupon.Code,
		&coupon.Description,
		&coupon.DiscountType,
		&coupon.DiscountValue,
		&coupon.MinAmount,
		&coupon.MaxDiscount,
		&coupon.UsageLimit,
		&coupon.UsedCount,
		&coupon.IsActive,
		&coupon.ExpiresAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	coupon.CreatedAt = createdAt.Time
	coupon.UpdatedAt = updatedAt.Time

	return &coupon, nil
}
