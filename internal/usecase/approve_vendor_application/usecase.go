package approve_vendor_application

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	profileRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/profile"
	appRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/vendorapplication"
	vendorRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/vendorprofile"
)

// UseCase use case одобрения заявки на роль вендора
type UseCase struct {
	appRepo      ApplicationRepository
	vendorRepo   VendorRepository
	profileRepo  ProfileRepository
	roles        RoleCache
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appRepo ApplicationRepository,
	vendorRepo VendorRepository,
	profileRepo ProfileRepository,
	roles RoleCache,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appRepo:      appRepo,
		vendorRepo:   vendorRepo,
		profileRepo:  profileRepo,
		roles:        roles,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute одобряет заявку
// Смена статуса заявки, создание профиля вендора и смена роли выполняются
// в одной транзакции: при любой ошибке заявка остается pending
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApproveVendorApplication: application id=%d by admin=%d", req.ApplicationID, req.ReviewerID)

	now := uc.timeProvider.Now()
	var result Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем заявку с блокировкой строки
		app, err := uc.appRepo.GetByID(txCtx, req.ApplicationID)
		if err != nil {
			if errors.Is(err, appRepo.ErrApplicationNotFound) {
				return ErrApplicationNotFound
			}
			return fmt.Errorf("%w: failed to get application: %v", ErrInternal, err)
		}

		if !app.IsPending() {
			return fmt.Errorf("%w: status=%s", ErrAlreadyReviewed, app.Status)
		}

		// 2. Guarded смена статуса pending -> approved
		err = uc.appRepo.MarkReviewed(txCtx, app.ID, domain.ApplicationApproved, req.ReviewerID, now, nil)
		if err != nil {
			switch {
			case errors.Is(err, appRepo.ErrAlreadyReviewed):
				return ErrAlreadyReviewed
			case errors.Is(err, appRepo.ErrApplicationNotFound):
				return ErrApplicationNotFound
			}
			return fmt.Errorf("%w: failed to mark application: %v", ErrInternal, err)
		}

		// 3. Создаем профиль вендора с нулевыми счетчиками
		vendor, err := uc.vendorRepo.Create(txCtx, domain.NewVendorProfile(app, now))
		if err != nil {
			if errors.Is(err, vendorRepo.ErrVendorAlreadyExists) {
				return ErrVendorExists
			}
			return fmt.Errorf("%w: failed to create vendor profile: %v", ErrInternal, err)
		}

		// 4. Повышаем роль заявителя
		if err := uc.profileRepo.UpdateRole(txCtx, app.UserID, domain.RoleVendor); err != nil {
			if errors.Is(err, profileRepo.ErrProfileNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("%w: failed to update role: %v", ErrInternal, err)
		}

		app.Status = domain.ApplicationApproved
		app.ReviewedBy = &req.ReviewerID
		app.ReviewedAt = &now

		result = Response{Application: app, Vendor: vendor}
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrApplicationNotFound), errors.Is(err, ErrAlreadyReviewed),
			errors.Is(err, ErrVendorExists), errors.Is(err, ErrUserNotFound):
			uc.logger.Warn("ApproveVendorApplication: application id=%d: %v", req.ApplicationID, err)
			return nil, err
		case errors.Is(err, ErrInternal):
			uc.logger.Error("ApproveVendorApplication: application id=%d: %v", req.ApplicationID, err)
			return nil, err
		}
		uc.logger.Error("ApproveVendorApplication: transaction failed for application id=%d: %v", req.ApplicationID, err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	// Роль читается через кэш, сбрасываем его только после коммита
	uc.roles.InvalidateRole(ctx, result.Application.UserID)
	uc.metrics.IncVendorApplicationReviewed(string(domain.ApplicationApproved))

	uc.logger.Info("ApproveVendorApplication: application id=%d approved, vendor id=%d, user=%d",
		result.Application.ID, result.Vendor.ID, result.Application.UserID)

	return &result, nil
}
