package category

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

var categoryColumns = []string{
	"id",
	"name",
	"slug",
	"icon",
	"description",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий категорий услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория категорий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает категорию
func (r *Repository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("categories").
		Columns("name", "slug", "icon", "description", "is_active").
		Values(category.Name, category.Slug, category.Icon, category.Description, category.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&category.ID, &createdAt, &updatedAt)

	if pgerr.IsUniqueViolation(err) {
		return nil, ErrSlugAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	category.CreatedAt = createdAt.Time
	category.UpdatedAt = updatedAt.Time

	return category, nil
}

// GetByID получает категорию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(categoryColumns...).
		From("categories").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	category, err := scanCategory(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan category: %v", ErrScanRow, err)
	}

	return category, nil
}

// List получает категории, onlyActive скрывает отключенные
func (r *Repository) List(ctx context.Context, onlyActive bool) ([]*domain.Category, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(categoryColumns...).
		From("categories").
		OrderBy("name ASC")

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

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return categories, nil
}

// Update обновляет категорию целиком
func (r *Repository) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("categories").
		Set("name", category.Name).
		Set("slug", category.Slug).
		Set("icon", category.Icon).
		Set("description", category.Description).
		Set("is_active", category.IsActive).
		Set("updated_at", psqlbuilder.Expr("NOW()")).
		Where(squirrel.Eq{"id": category.ID}).
		Suffix("RETURNING " + strings.Join(categoryColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanCategory(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrSlugAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - scan category: %v", ErrScanRow, err)
	}

	return updated, nil
}

// Delete удаляет категорию, если на нее не ссылаются услуги
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("categories").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if pgerr.IsForeignKeyViolation(err) {
		return ErrCategoryInUse
	}
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var category domain.Category
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Icon,
		&category.Description,
		&category.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	category.CreatedAt = createdAt.Time
	category.UpdatedAt = updatedAt.Time

	return &category, nil
}
