package vendorapplication

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceService/pkg/psqlbuilder"
)

var applicationColumns = []string{
	"id",
	"user_id",
	"business_name",
	"business_type",
	"business_address",
	"business_description",
	"experience",
	"documents",
	"status",
	"reviewed_by",
	"reviewed_at",
	"rejection_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий заявок на получение роли вендора
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает заявку в статусе pending
func (r *Repository) Create(ctx context.Context, app *domain.VendorApplication) (*domain.VendorApplication, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("vendor_applications").
		Columns(
			"user_id",
			"business_name",
			"business_type",
			"business_address",
			"business_description",
			"experience",
			"documents",
			"status",
		).
		Values(
			app.UserID,
			app.BusinessName,
			app.BusinessType,
			app.BusinessAddress,
			app.BusinessDescription,
			app.Experience,
			app.Documents,
			domain.ApplicationPending,
		).
		Suffix("RETURNING id, status, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&app.ID,
		&app.Status,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	app.CreatedAt = createdAt.Time
	app.UpdatedAt = updatedAt.Time

	return app, nil
}

// GetByID получает заявку по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.VendorApplication, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(applicationColumns...).
		From("vendor_applications").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	app, err := scanApplication(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan application: %v", ErrScanRow, err)
	}

	return app, nil
}

// GetLatestByUserID получает последнюю заявку пользователя
func (r *Repository) GetLatestByUserID(ctx context.Context, userID int64) (*domain.VendorApplication, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(applicationColumns...).
		From("vendor_applications").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestByUserID - build select query: %v", ErrBuildQuery, err)
	}

	app, err := scanApplication(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestByUserID - scan application: %v", ErrScanRow, err)
	}

	return app, nil
}

// HasOpenApplication проверяет, есть ли у пользователя заявка в статусе pending или approved
func (r *Repository) HasOpenApplication(ctx context.Context, userID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("vendor_applications").
		Where(squirrel.Eq{
			"user_id": userID,
			"status":  []string{string(domain.ApplicationPending), string(domain.ApplicationApproved)},
		}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasOpenApplication - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: HasOpenApplication - scan count: %v", ErrScanRow, err)
	}

	return count > 0, nil
}

// List получает заявки, опционально фильтруя по статусу, новые первыми
func (r *Repository) List(ctx context.Context, status *domain.ApplicationStatus) ([]*domain.VendorApplication, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(applicationColumns...).
		From("vendor_applications").
		OrderBy("created_at DESC", "id DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	apps := make([]*domain.VendorApplication, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return apps, nil
}

// MarkReviewed переводит заявку из pending в approved или rejected
// Обновление условное (WHERE status = 'pending'), поэтому заявка рассматривается ровно один раз:
// ErrAlreadyReviewed - заявка уже рассмотрена, ErrApplicationNotFound - заявки нет
func (r *Repository) MarkReviewed(
	ctx context.Context,
	id int64,
	status domain.ApplicationStatus,
	reviewerID int64,
	reviewedAt time.Time,
	rejectionReason *string,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("vendor_applications").
		Set("status", status).
		Set("reviewed_by", reviewerID).
		Set("reviewed_at", reviewedAt).
		Set("rejection_reason", rejectionReason).
		Set("updated_at", psqlbuilder.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.ApplicationPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkReviewed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkReviewed - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkReviewed - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected > 0 {
		return nil
	}

	// Ни одна строка не обновлена: различаем "нет заявки" и "уже рассмотрена"
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}

	return ErrAlreadyReviewed
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanApplication(row rowScanner) (*domain.VendorApplication, error) {
	var app domain.VendorApplication
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&app.ID,
		&app.UserID,
		&app.BusinessName,
		&app.BusinessType,
		&app.BusinessAddress,
		&app.BusinessDescription,
		&app.Experience,
		&app.Documents,
		&app.Status,
		&app.ReviewedBy,
		&app.ReviewedAt,
		&app.RejectionReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	app.CreatedAt = createdAt.Time
	app.UpdatedAt = updatedAt.Time

	return &app, nil
}
