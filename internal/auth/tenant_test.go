package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/messaging-service/internal/domain"
	apperrors "github.com/spec-kit/messaging-service/pkg/util"
)

func tenantTestApp(sessionTenant string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		// stand-in for AuthMiddleware
		c.Locals(principalKey, &Principal{User: &domain.User{
			ID:       "user-1",
			TenantID: sessionTenant,
			RoleCode: domain.RoleAgent,
		}})
		return c.Next()
	})
	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"message_key": de.Code})
		}
		return nil
	})
	app.Use(ResolveTenant())
	app.Get("/scoped", func(c *fiber.Ctx) error {
		tenantID, err := MustTenant(c)
		if err != nil {
			return err
		}
		return c.SendString(tenantID)
	})
	return app
}

func TestResolveTenantAdoptsSessionTenant(t *testing.T) {
	app := tenantTestApp("tenant-1")

	req := httptest.NewRequest(http.MethodGet, "/scoped", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestResolveTenantMatchingHeaderAllowed(t *testing.T) {
	app := tenantTestApp("tenant-1")

	req := httptest.NewRequest(http.MethodGet, "/scoped", nil)
	req.Header.Set(TenantHeader, "tenant-1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestResolveTenantMismatchedHeaderDenied(t *testing.T) {
	app := tenantTestApp("tenant-1")

	req := httptest.NewRequest(http.MethodGet, "/scoped", nil)
	req.Header.Set(TenantHeader, "tenant-2")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestResolveTenantMissingEverywhere(t *testing.T) {
	app := tenantTestApp("")

	req := httptest.NewRequest(http.MethodGet, "/scoped", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestResolveTenantHeaderOnlyFallback(t *testing.T) {
	app := tenantTestApp("")

	req := httptest.NewRequest(http.MethodGet, "/scoped", nil)
	req.Header.Set(TenantHeader, "tenant-9")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
