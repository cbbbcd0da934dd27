package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/handlers"
	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/profiles"
)

const (
	msgUnknownUser = "пользователь не найден"
	msgForbidden   = "недостаточно прав"
)

// RoleResolver возвращает актуальную роль пользователя
type RoleResolver interface {
	GetRole(ctx context.Context, userID int64) (domain.Role, error)
}

// LoadRole читает роль пользователя из профиля и кладет ее в контекст
// Должен стоять после Auth
func LoadRole(resolver RoleResolver, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			role, err := resolver.GetRole(r.Context(), userID)
			if err != nil {
				if errors.Is(err, profiles.ErrProfileNotFound) {
					logger.Warn("%s %s - Unknown user: user_id=%d", r.Method, r.URL.Path, userID)
					handlers.RespondUnauthorized(w, msgUnknownUser)
					return
				}
				logger.Error("%s %s - Failed to resolve role: user_id=%d, error=%v", r.Method, r.URL.Path, userID, err)
				handlers.RespondInternalError(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithRole(r.Context(), role)))
		})
	}
}

// RequireRole пропускает только пользователей с одной из перечисленных ролей
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRole(r.Context())
			if !ok {
				handlers.RespondForbidden(w, msgForbidden)
				return
			}

			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}

			handlers.RespondForbidden(w, msgForbidden)
		})
	}
}
