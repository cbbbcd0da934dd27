package vendorprofile

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-MarketplaceService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceService/pkg/psqlbuilder"
)

var vendorColumns = []string{
	"id",
	"user_id",
	"business_name",
	"business_type",
	"business_address",
	"business_description",
	"experience",
	"documents",
	"total_earnings",
	"total_bookings",
	"rating",
	"is_active",
	"approved_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий профилей вендоров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория профилей вендоров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает профиль вендора
// На user_id стоит UNIQUE ограничение: повторное создание вернет ErrVendorAlreadyExists
func (r *Repository) Create(ctx context.Context, vendor *domain.VendorProfile) (*domain.VendorProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("vendor_profiles").
		Columns(
			"user_id",
			"business_name",
			"business_type",
			"business_address",
			"business_description",
			"experience",
			"documents",
			"total_earnings",
			"total_bookings",
			"rating",
			"is_active",
			"approved_at",
		).
		Values(
			vendor.UserID,
			vendor.BusinessName,
			vendor.BusinessType,
			vendor.BusinessAddress,
			vendor.BusinessDescription,
			vendor.Experience,
			vendor.Documents,
			vendor.TotalEarnings,
			vendor.TotalBookings,
			vendor.Rating,
			vendor.IsActive,
			vendor.ApprovedAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&vendor.ID,
		&createdAt,
		&updatedAt,
	)

	if pgerr.IsUniqueViolation(err) {
		return nil, ErrVendorAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	vendor.CreatedAt = createdAt.Time
	vendor.UpdatedAt = updatedAt.Time

	return vendor, nil
}

// GetByID получает профиль вендора по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.VendorProfile, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByUserID получает профиль вендора по ID пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.VendorProfile, error) {
	return r.getOne(ctx, "GetByUserID", squirrel.Eq{"user_id": userID})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.VendorProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(vendorColumns...).
		From("vendor_profiles").
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	vendor, err := scanVendor(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan vendor: %v", ErrScanRow, op, err)
	}

	return vendor, nil
}

// UpdateBusiness обновляет бизнес-информацию вендора
// Счетчики, рейтинг и дата одобрения не изменяются
func (r *Repository) UpdateBusiness(ctx context.Context, vendor *domain.VendorProfile) (*domain.VendorProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("vendor_profiles").
		Set("business_name", vendor.BusinessName).
		Set("business_type", vendor.BusinessType).
		Set("business_address", vendor.BusinessAddress).
		Set("business_description", vendor.BusinessDescription).
		Set("experience", vendor.Experience).
		Set("documents", vendor.Documents).
		Set("updated_at", psqlbuilder.Expr("NOW()")).
		Where(squirrel.Eq{"id": vendor.ID}).
		Suffix("RETURNING " + strings.Join(vendorColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateBusiness - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanVendor(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateBusiness - scan vendor: %v", ErrScanRow, err)
	}

	return updated, nil
}

// AddCompletedBooking увеличивает счетчик бронирований и сумму заработка вендора
// Вызывается в одной транзакции с переводом бронирования в completed
func (r *Repository) AddCompletedBooking(ctx context.Context, id int64, earning decimal.Decimal) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("vendor_profiles").
		Set("total_bookings", psqlbuilder.Expr("total_bookings + 1")).
		Set("total_earnings", psqlbuilder.Expr("total_earnings + ?", earning)).
		Set("updated_at", psqlbuilder.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddCompletedBooking - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AddCompletedBooking - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AddCompletedBooking - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrVendorNotFound
	}

	return nil
}

// DeactivateByUserID снимает профиль вендора пользователя с активности и возвращает его ID
func (r *Repository) DeactivateByUserID(ctx context.Context, userID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("vendor_profiles").
		Set("is_active", false).
		Set("updated_at", psqlbuilder.Expr("NOW()")).
		Where(squirrel.Eq{"user_id": userID}).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeactivateByUserID - build update query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrVendorNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: DeactivateByUserID - scan id: %v", ErrScanRow, err)
	}

	return id, nil
}

// RecalculateRating пересчитывает рейтинг вендора как среднее по отзывам
func (r *Repository) RecalculateRating(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("vendor_profiles").
		Set("rating", psqlbuilder.Expr(
			"COALESCE((SELECT ROUND(AVG(rating)::numeric, 1) FROM reviews WHERE vendor_id = ?), 0)", id,
		)).
		Set("updated_at", psqlbuilder.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RecalculateRating - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: RecalculateRating - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVendor(row rowScanner) (*domain.VendorProfile, error) {
	var vendor domain.VendorProfile
	var approvedAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&vendor.ID,
		&vendor.UserID,
		&vendor.BusinessName,
		&vendor.BusinessType,
		&vendor.BusinessAddress,
		&vendor.BusinessDescription,
		&vendor.Experience,
		&vendor.Documents,
		&vendor.TotalEarnings,
		&vendor.TotalBookings,
		&vendor.Rating,
		&vendor.IsActive,
		&approvedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	vendor.ApprovedAt = approvedAt.Time
	vendor.CreatedAt = createdAt.Time
	vendor.UpdatedAt = updatedAt.Time

	return &vendor, nil
}
