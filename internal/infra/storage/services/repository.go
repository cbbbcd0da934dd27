package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-MarketplaceService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceService/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"vendor_id",
	"admin_created",
	"name",
	"category_id",
	"city_id",
	"price",
	"rating",
	"image_url",
	"description",
	"features",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает услугу
func (r *Repository) Create(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("services").
		Columns(
			"vendor_id",
			"admin_created",
			"name",
			"category_id",
			"city_id",
			"price",
			"image_url",
			"description",
			"features",
			"status",
		).
		Values(
			service.VendorID,
			service.AdminCreated,
			service.Name,
			service.CategoryID,
			service.CityID,
			service.Price,
			service.ImageURL,
			service.Description,
			pq.Array(nonNilFeatures(service.Features)),
			service.Status,
		).
		Suffix("RETURNING id, rating, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.Rating,
		&createdAt,
		&updatedAt,
	)

	if pgerr.IsForeignKeyViolation(err) {
		return nil, ErrInvalidReference
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return service, nil
}

// GetByID получает услугу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	service, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %v", ErrScanRow, err)
	}

	return service, nil
}

// List получает услуги по фильтру, лучшие по рейтингу первыми
func (r *Repository) List(ctx context.Context, filter domain.ServicesFilter) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(serviceColumns...).
		From("services").
		OrderBy("rating DESC", "id DESC")

	if filter.CategoryID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category_id": *filter.CategoryID})
	}
	if filter.CityID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"city_id": *filter.CityID})
	}
	if filter.VendorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"vendor_id": *filter.VendorID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"name": "%" + strings.TrimSpace(*filter.Search) + "%"})
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

	services := make([]*domain.Service, 0)
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// Update обновляет редактируемые поля услуги (владелец и рейтинг не меняются)
func (r *Repository) Update(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("name", service.Name).
		Set("category_id", service.CategoryID).
		Set("city_id", service.CityID).
		Set("price", service.Price).
		Set("image_url", service.ImageURL).
		Set("description", service.Description).
		Set("features", pq.Array(nonNilFeatures(service.Features))).
		Set("status", service.Status).
		Set("updated_at", psqlbuilder.Expr("NOW()")).
		Where(squirrel.Eq{"id": service.ID}).
		Suffix("RETURNING " + strings.Join(serviceColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if pgerr.IsForeignKeyViolation(err) {
		return nil, ErrInvalidReference
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - scan service: %v", ErrScanRow, err)
	}

	return updated, nil
}

// Delete удаляет услугу, если по ней нет бронирований
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if pgerr.IsForeignKeyViolation(err) {
		return ErrServiceInUse
	}
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// DeactivateByVendor переводит все услуги вендора в inactive
func (r *Repository) DeactivateByVendor(ctx context.Context, vendorID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("status", string(domain.ServiceInactive)).
		Set("updated_at", psqlbuilder.Expr("NOW()")).
		Where(squirrel.Eq{"vendor_id": vendorID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeactivateByVendor - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeactivateByVendor - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeactivateByVendor - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// RecalculateRating пересчитывает рейтинг услуги как среднее по отзывам
func (r *Repository) RecalculateRating(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("rating", psqlbuilder.Expr(
			"COALESCE((SELECT ROUND(AVG(rating)::numeric, 1) FROM reviews WHERE service_id = ?), 0)", id,
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

func nonNilFeatures(features []string) []string {
	if features == nil {
		return []string{}
	}
	return features
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var service domain.Service
	var features pq.StringArray
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&service.ID,
		&service.VendorID,
		&service.AdminCreated,
		&service.Name,
		&service.CategoryID,
		&service.CityID,
		&service.Price,
		&service.Rating,
		&service.ImageURL,
		&service.Description,
		&features,
		&service.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	service.Features = []string(features)
	if service.Features == nil {
		service.Features = []string{}
	}
	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}
