package controllers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velorajewels/velora/internal/pkg/middleware"
)

func TestSweepRouteRequiresSchedulerToken(t *testing.T) {
	t.Setenv("SCHEDULER_TOKEN", "sweep-secret")
	useStubLedger(t, newLedgerStubRepo())
	app := fiber.New()
	app.Post("/api/internal/sweep-expired-points", middleware.SchedulerAuthMiddleware(), HandleSweepExpiredPoints)

	req := httptest.NewRequest(fiber.MethodPost, "/api/internal/sweep-expired-points", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "unauthorized", body["error"])

	req = httptest.NewRequest(fiber.MethodPost, "/api/internal/sweep-expired-points", nil)
	req.Header.Set("X-Scheduler-Token", "wrong-secret")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(fiber.MethodPost, "/api/internal/sweep-expired-points", nil)
	req.Header.Set("X-Scheduler-Token", "sweep-secret")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSweepRouteUnavailableWithoutConfiguredToken(t *testing.T) {
	t.Setenv("SCHEDULER_TOKEN", "")
	app := fiber.New()
	app.Post("/api/internal/sweep-expired-points", middleware.SchedulerAuthMiddleware(), HandleSweepExpiredPoints)

	req := httptest.NewRequest(fiber.MethodPost, "/api/internal/sweep-expired-points", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
