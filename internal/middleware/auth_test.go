package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/damrideal/internal/config"
	"github.com/example/damrideal/internal/utils"
)

func testApp(t *testing.T) (*fiber.App, *config.Config) {
	t.Helper()
	cfg := &config.Config{JWTSecret: "test-secret"}

	app := fiber.New()
	app.Get("/user", RequireUser(cfg), func(c *fiber.Ctx) error {
		id, ok := GetCurrentUserID(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{"id": id})
	})
	app.Get("/admin", RequireAdmin(cfg), func(c *fiber.Ctx) error {
		claims, ok := GetCurrentAdmin(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{"role": claims.Role})
	})
	return app, cfg
}

func TestRequireUserMissingToken(t *testing.T) {
	app, _ := testApp(t)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireUserBearerToken(t *testing.T) {
	app, cfg := testApp(t)

	token, err := utils.GenerateUserToken(cfg.JWTSecret, uuid.New(), time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireUserLegacyHeaderFallback(t *testing.T) {
	app, cfg := testApp(t)

	token, err := utils.GenerateUserToken(cfg.JWTSecret, uuid.New(), time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("x-auth-token", token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireUserRejectsExpiredToken(t *testing.T) {
	app, cfg := testApp(t)

	token, err := utils.GenerateUserToken(cfg.JWTSecret, uuid.New(), -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireUserRejectsResetToken(t *testing.T) {
	app, cfg := testApp(t)

	token, err := utils.GenerateResetToken(cfg.JWTSecret, uuid.New(), time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireUserAcceptsAdminToken(t *testing.T) {
	app, cfg := testApp(t)

	token, err := utils.GenerateAdminToken(cfg.JWTSecret, uuid.New(), "ops@damrideal.com", "admin", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAdminRejectsUserToken(t *testing.T) {
	app, cfg := testApp(t)

	token, err := utils.GenerateUserToken(cfg.JWTSecret, uuid.New(), time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireAdminAcceptsAdminToken(t *testing.T) {
	app, cfg := testApp(t)

	token, err := utils.GenerateAdminToken(cfg.JWTSecret, uuid.New(), "ops@damrideal.com", "super-admin", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
