package city

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-MarketplaceService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceService/pkg/psqlbuilder"
)

var cityColumns = []string{"id", "name", "state", "is_active", "created_at", "updated_at"}

// Repository репозиторий районов обслуживания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория районов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает район, пара (name, state) уникальна
func (r *Repository) Create(ctx context.Context, city *domain.City) (*domain.City, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("cities").
		Columns("name", "state", "is_active").
		Values(city.Name, city.State, city.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&city.ID, &createdAt, &updatedAt)

	if pgerr.IsUniqueViolation(err) {
		return nil, ErrCityAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	city.CreatedAt = createdAt.Time
	city.UpdatedAt = updatedAt.Time

	return city, nil
}

// GetByID получает район по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.City, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(cityColumns...).
		From("cities").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	city, err := scanCity(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan city: %v", ErrScanRow, err)
	}

	return city, nil
}

// List получает районы, onlyActive скрывает отключенные
func (r *Repository) List(ctx context.Context, onlyActive bool) ([]*domain.City, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(cityColumns...).
		From("cities").
		OrderBy("state ASC", "name ASC")

	if onlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
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

	cities := make([]*domain.City, 0)
	for rows.Next() {
		city, err := scanCity(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		cities = append(cities, city)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return cities, nil
}

// Update обновляет район целиком
func (r *Repository) Update(ctx context.Context, city *domain.City) (*domain.City, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("cities").
		Set("name", city.Name).
		Set("state", city.State).
		Set("is_active", city.IsActive).
		Set("updated_at", psqlbuilder.Expr("NOW()")).
		Where(squirrel.Eq{"id": city.ID}).
		Suffix("RETURNING " + strings.Join(cityColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanCity(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCityNotFound
	}
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrCityAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - scan city: %v", ErrScanRow, err)
	}

	return updated, nil
}

// Delete удаляет район, если на него не ссылаются услуги
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("cities").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if pgerr.IsForeignKeyViolation(err) {
		return ErrCityInUse
	}
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCityNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCity(row rowScanner) (*domain.City, error) {
	var city domain.City
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(&city.ID, &city.Name, &city.State, &city.IsActive, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	city.CreatedAt = createdAt.Time
	city.UpdatedAt = updatedAt.Time

	return &city, nil
}
