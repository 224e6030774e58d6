package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/messaging-service/internal/observability"
	apperrors "github.com/spec-kit/messaging-service/pkg/util"
)

func middlewareTestApp(metrics *observability.Metrics) *fiber.App {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), metrics, time.Second)

	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("widget.not_found", "widget not found")
	})
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})
	return app
}

func TestErrorHandlingRendersEnvelope(t *testing.T) {
	app := middlewareTestApp(observability.NewMetrics())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "widget.not_found", body["message_key"])
}

func TestPanicRecoveredAsInternalError(t *testing.T) {
	app := middlewareTestApp(observability.NewMetrics())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/panic", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestRequestMetricsRecordFinalStatus(t *testing.T) {
	metrics := observability.NewMetrics()
	app := middlewareTestApp(metrics)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.Equal(t, int64(1), metrics.RequestCount("/ok", http.MethodGet, http.StatusOK))
	// Failed requests must be counted with the status the error handler
	// wrote, not the pre-error 200.
	assert.Equal(t, int64(1), metrics.RequestCount("/missing", http.MethodGet, http.StatusNotFound))
	assert.Zero(t, metrics.RequestCount("/missing", http.MethodGet, http.StatusOK))
}
