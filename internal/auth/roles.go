package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/messaging-service/internal/domain"
	apperrors "github.com/spec-kit/messaging-service/pkg/util"
)

// RequireRole ensures the principal holds one of the allowed roles.
func RequireRole(allowed ...domain.RoleCode) fiber.Handler {
	allowedSet := make(map[domain.RoleCode]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("auth.missing_token", "authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.User.RoleCode]; !exists {
			return apperrors.NewForbidden("auth.insufficient_role", "insufficient role")
		}
		return c.Next()
	}
}
