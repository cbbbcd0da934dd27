package profiles

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	profileRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/profile"
	vendorRepo "github.com/m04kA/SMC-MarketplaceService/internal/infra/storage/vendorprofile"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/profiles/models"
)

// Service сервис профилей пользователей и их ролей
type Service struct {
	profileRepo ProfileRepository
	vendorRepo  VendorRepository
	serviceRepo ServiceRepository
	txManager   TransactionManager
	cache       Cache
	logger      Logger
}

// NewService создает новый экземпляр сервиса профилей
// cache может быть nil: тогда роль всегда читается из БД
func NewService(
	profileRepo ProfileRepository,
	vendorRepo VendorRepository,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	cache Cache,
	logger Logger,
) *Service {
	return &Service{
		profileRepo: profileRepo,
		vendorRepo:  vendorRepo,
		serviceRepo: serviceRepo,
		txManager:   txManager,
		cache:       cache,
		logger:      logger,
	}
}

func roleCacheKey(userID int64) string {
	return fmt.Sprintf("role:%d", userID)
}

// Register создает профиль покупателя (роль user)
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.ProfileResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	s.logger.Info("Register: email=%s", email)

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	created, err := s.profileRepo.Create(ctx, &domain.Profile{
		Email:   email,
		Name:    strings.TrimSpace(req.Name),
		Phone:   req.Phone,
		Address: req.Address,
		Role:    domain.RoleUser,
	})
	if err != nil {
		if errors.Is(err, profileRepo.ErrEmailAlreadyExists) {
			s.logger.Warn("Register: email=%s already registered", email)
			return nil, ErrEmailAlreadyExists
		}
		s.logger.Error("Register: repository error: %v", err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: created profile id=%d", created.ID)
	return models.FromDomainProfile(created), nil
}

// EnsureAdmin создает администратора или повышает существующий профиль до admin
func (s *Service) EnsureAdmin(ctx context.Context, email, name string) (*models.ProfileResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	s.logger.Info("EnsureAdmin: email=%s", email)

	existing, err := s.profileRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.changeRole(ctx, existing.ID, existing.Role, domain.RoleAdmin); err != nil {
			s.logger.Error("EnsureAdmin: failed to promote profile id=%d: %v", existing.ID, err)
			return nil, err
		}
		existing.Role = domain.RoleAdmin
		return models.FromDomainProfile(existing), nil
	case !errors.Is(err, profileRepo.ErrProfileNotFound):
		s.logger.Error("EnsureAdmin: repository error: %v", err)
		return nil, fmt.Errorf("%w: EnsureAdmin - repository error: %v", ErrInternal, err)
	}

	if name == "" {
		name = "Administrator"
	}

	created, err := s.profileRepo.Create(ctx, &domain.Profile{Email: email, Name: name, Role: domain.RoleAdmin})
	if err != nil {
		s.logger.Error("EnsureAdmin: repository error: %v", err)
		return nil, fmt.Errorf("%w: EnsureAdmin - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainProfile(created), nil
}

// GetByID получает профиль по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ProfileResponse, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Warn("GetByID: profile id=%d not found", id)
			return nil, ErrProfileNotFound
		}
		s.logger.Error("GetByID: repository error for profile id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainProfile(profile), nil
}

// UpdateMe обновляет контактные данные своего профиля
func (s *Service) UpdateMe(ctx context.Context, id int64, req *models.UpdateProfileRequest) (*models.ProfileResponse, error) {
	s.logger.Info("UpdateMe: updating profile id=%d", id)

	profile, err := s.applyUpdate(ctx, id, req)
	if err != nil {
		return nil, err
	}

	return models.FromDomainProfile(profile), nil
}

// List возвращает пользователей, опционально по роли (панель администратора)
func (s *Service) List(ctx context.Context, role *string) (*models.ProfileListResponse, error) {
	var domainRole *domain.Role
	if role != nil {
		r := domain.Role(*role)
		if !r.IsValid() {
			return nil, fmt.Errorf("%w: invalid role", ErrInvalidInput)
		}
		domainRole = &r
	}

	profiles, err := s.profileRepo.List(ctx, domainRole)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainProfileList(profiles), nil
}

// AdminUpdate обновляет пользователя и при необходимости его роль
// Роль vendor выдается только одобрением заявки, снятие роли vendor деактивирует профиль вендора и его услуги
func (s *Service) AdminUpdate(ctx context.Context, id int64, req *models.AdminUpdateUserRequest) (*models.ProfileResponse, error) {
	s.logger.Info("AdminUpdate: updating profile id=%d", id)

	current, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Warn("AdminUpdate: profile id=%d not found", id)
			return nil, ErrProfileNotFound
		}
		s.logger.Error("AdminUpdate: repository error for profile id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: AdminUpdate - repository error: %v", ErrInternal, err)
	}

	var newRole *domain.Role
	if req.Role != nil {
		r := domain.Role(*req.Role)
		if !r.IsValid() {
			return nil, fmt.Errorf("%w: invalid role", ErrInvalidInput)
		}
		if r == domain.RoleVendor && current.Role != domain.RoleVendor {
			s.logger.Warn("AdminUpdate: vendor role requested for profile id=%d without application", id)
			return nil, ErrVendorRoleRequiresApplication
		}
		newRole = &r
	}

	profile, err := s.applyUpdate(ctx, id, &req.UpdateProfileRequest)
	if err != nil {
		return nil, err
	}

	if newRole != nil && *newRole != profile.Role {
		if err := s.changeRole(ctx, id, profile.Role, *newRole); err != nil {
			s.logger.Error("AdminUpdate: failed to update role for profile id=%d: %v", id, err)
			return nil, err
		}
		s.logger.Info("AdminUpdate: role of profile id=%d changed %s -> %s", id, profile.Role, *newRole)
		profile.Role = *newRole
	}

	return models.FromDomainProfile(profile), nil
}

// changeRole меняет роль в одной транзакции с деактивацией вендора при снятии роли vendor
func (s *Service) changeRole(ctx context.Context, id int64, from, to domain.Role) error {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.profileRepo.UpdateRole(txCtx, id, to); err != nil {
			return err
		}

		if from != domain.RoleVendor || to == domain.RoleVendor {
			return nil
		}

		vendorID, err := s.vendorRepo.DeactivateByUserID(txCtx, id)
		if errors.Is(err, vendorRepo.ErrVendorNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		n, err := s.serviceRepo.DeactivateByVendor(txCtx, vendorID)
		if err != nil {
			return err
		}

		s.logger.Info("changeRole: vendor id=%d of profile id=%d deactivated with %d services", vendorID, id, n)
		return nil
	})
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("%w: changeRole - repository error: %v", ErrInternal, err)
	}

	s.InvalidateRole(ctx, id)
	return nil
}

// Delete удаляет пользователя
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting profile id=%d", id)

	if err := s.profileRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Warn("Delete: profile id=%d not found", id)
			return ErrProfileNotFound
		}
		s.logger.Error("Delete: repository error for profile id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.InvalidateRole(ctx, id)
	return nil
}

// GetRole возвращает роль пользователя, сначала из кэша
func (s *Service) GetRole(ctx context.Context, userID int64) (domain.Role, error) {
	var cached domain.Role
	found, err := s.cache.GetJSON(ctx, roleCacheKey(userID), &cached)
	if err != nil {
		s.logger.Warn("GetRole: cache read failed for user=%d: %v", userID, err)
	}
	if found && cached.IsValid() {
		return cached, nil
	}

	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			return "", ErrProfileNotFound
		}
		s.logger.Error("GetRole: repository error for user=%d: %v", userID, err)
		return "", fmt.Errorf("%w: GetRole - repository error: %v", ErrInternal, err)
	}

	if err := s.cache.SetJSON(ctx, roleCacheKey(userID), profile.Role); err != nil {
		s.logger.Warn("GetRole: cache write failed for user=%d: %v", userID, err)
	}

	return profile.Role, nil
}

// InvalidateRole сбрасывает закэшированную роль пользователя
func (s *Service) InvalidateRole(ctx context.Context, userID int64) {
	if err := s.cache.Delete(ctx, roleCacheKey(userID)); err != nil {
		s.logger.Warn("InvalidateRole: cache delete failed for user=%d: %v", userID, err)
	}
}

func (s *Service) applyUpdate(ctx context.Context, id int64, req *models.UpdateProfileRequest) (*domain.Profile, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	updated, err := s.profileRepo.Update(ctx, &domain.Profile{
		ID:        id,
		Name:      name,
		Phone:     req.Phone,
		Address:   req.Address,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Warn("applyUpdate: profile id=%d not found", id)
			return nil, ErrProfileNotFound
		}
		s.logger.Error("applyUpdate: repository error for profile id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: applyUpdate - repository error: %v", ErrInternal, err)
	}

	return updated, nil
}
