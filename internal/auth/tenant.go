package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/messaging-service/pkg/util"
)

const (
	// TenantHeader optionally carries an explicit tenant indicator. It may
	// only confirm the session's bound tenant, never switch it.
	TenantHeader = "X-Tenant-ID"

	effectiveTenantKey = "effective_tenant"
)

// ResolveTenant determines the effective tenant for the request: the bound
// tenant from the authenticated session, cross-checked against any explicit
// header. A mismatch aborts the request before any data access runs.
func ResolveTenant() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("auth.missing_token", "authentication required")
		}

		sessionTenant := principal.User.TenantID
		requested := strings.TrimSpace(c.Get(TenantHeader))

		if requested != "" && sessionTenant != "" && requested != sessionTenant {
			return apperrors.NewForbidden("tenant.access_denied", "tenant access denied")
		}

		effective := sessionTenant
		if effective == "" {
			effective = requested
		}
		if effective == "" {
			return apperrors.NewValidationError("tenant.required", "tenant is required", nil)
		}

		c.Locals(effectiveTenantKey, effective)
		return c.Next()
	}
}

// TenantFromContext returns the effective tenant set by ResolveTenant.
func TenantFromContext(c *fiber.Ctx) (string, bool) {
	val, ok := c.Locals(effectiveTenantKey).(string)
	if !ok || val == "" {
		return "", false
	}
	return val, true
}

// MustTenant returns the effective tenant or a validation error for routes
// that require tenant scope.
func MustTenant(c *fiber.Ctx) (string, error) {
	tenantID, ok := TenantFromContext(c)
	if !ok {
		return "", apperrors.NewValidationError("tenant.required", "tenant is required", nil)
	}
	return tenantID, nil
}
