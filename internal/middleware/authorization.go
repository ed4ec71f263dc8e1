package middleware

import (
	"context"
	"net/http"

	"tech-gadget/internal/domain"

	"go.uber.org/zap"
)

// RoleSource resolves the stored role for an email. The role is looked up
// per request so promotions take effect without re-issuing tokens.
type RoleSource interface {
	RoleByEmail(ctx context.Context, email string) (string, error)
}

// RequireAdmin ensures the authenticated user holds the admin role.
// AuthMiddleware must run first.
func RequireAdmin(roles RoleSource, logger *zap.Logger) func(http.Handler) http.Handler {
	return requireRole(domain.RoleAdmin, roles, logger)
}

// RequireModerator ensures the authenticated user holds the moderator role.
func RequireModerator(roles RoleSource, logger *zap.Logger) func(http.Handler) http.Handler {
	return requireRole(domain.RoleModerator, roles, logger)
}

func requireRole(want string, roles RoleSource, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := GetUserEmail(r.Context())
			if !ok {
				logger.Warn("Email not found in context")
				RespondWithError(w, http.StatusForbidden, "forbidden access")
				return
			}

			role, err := roles.RoleByEmail(r.Context(), email)
			if err != nil {
				logger.Warn("Role lookup failed",
					zap.String("email", email),
					zap.Error(err),
				)
				RespondWithError(w, http.StatusForbidden, "forbidden access")
				return
			}

			if role != want {
				logger.Warn("Insufficient role for endpoint",
					zap.String("email", email),
					zap.String("role", role),
					zap.String("required", want),
				)
				RespondWithError(w, http.StatusForbidden, "forbidden access")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
