package stats

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceService/pkg/psqlbuilder"
)

// Repository агрегаты для панелей администратора и вендора
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория статистики
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetAdminStats считает сводку по всей платформе
// Выручка - сумма total_amount по неотмененным бронированиям
func (r *Repository) GetAdminStats(ctx context.Context) (*domain.AdminStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select().
		Column("(SELECT COUNT(*) FROM profiles)").
		Column("(SELECT COUNT(*) FROM services)").
		Column("COUNT(*)").
		Column(psqlbuilder.Expr("COALESCE(SUM(total_amount) FILTER (WHERE status <> ?), 0)", domain.StatusCancelled)).
		Column(psqlbuilder.Expr("COUNT(*) FILTER (WHERE status = ?)", domain.StatusPending)).
		Column(psqlbuilder.Expr("COUNT(*) FILTER (WHERE status = ?)", domain.StatusCompleted)).
		From("bookings").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAdminStats - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.AdminStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalUsers,
		&stats.TotalServices,
		&stats.TotalBookings,
		&stats.TotalRevenue,
		&stats.PendingBookings,
		&stats.CompletedBookings,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAdminStats - scan stats: %v", ErrScanRow, err)
	}

	return &stats, nil
}

// GetVendorStats считает сводку по бронированиям вендора
// Заработок - сумма vendor_earning по завершенным бронированиям
func (r *Repository) GetVendorStats(ctx context.Context, vendorID int64) (*domain.VendorStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		Column(psqlbuilder.Expr("COUNT(*) FILTER (WHERE status = ?)", domain.StatusPending)).
		Column(psqlbuilder.Expr("COUNT(*) FILTER (WHERE status = ?)", domain.StatusCompleted)).
		Column(psqlbuilder.Expr("COALESCE(SUM(vendor_earning) FILTER (WHERE status = ?), 0)", domain.StatusCompleted)).
		From("bookings").
		Where(squirrel.Eq{"vendor_id": vendorID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetVendorStats - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.VendorStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalBookings,
		&stats.PendingBookings,
		&stats.CompletedBookings,
		&stats.TotalEarnings,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: GetVendorStats - scan stats: %v", ErrScanRow, err)
	}

	return &stats, nil
}
