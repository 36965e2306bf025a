package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projetoso/showcase-api/internal/services"
)

func newGuardedApp() *fiber.App {
	app := fiber.New()

	ok := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("user_id"),
			"role":    c.Locals("role"),
		})
	}

	app.Post("/projects", AuthRequired, Authorize("projects", "create"), ok)
	app.Put("/projects/:id", AuthRequired, Authorize("projects", "update"), ok)
	app.Delete("/users/:id", AuthRequired, Authorize("users", "delete"), ok)
	return app
}

func request(t *testing.T, app *fiber.App, method, target, token string) int {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestAuthRequiredMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newGuardedApp()

	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "POST", "/projects", ""))
}

func TestAuthRequiredBadHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newGuardedApp()

	req := httptest.NewRequest("POST", "/projects", nil)
	req.Header.Set("Authorization", "Token abc") // not a bearer token
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequiredInvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newGuardedApp()

	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "POST", "/projects", "garbage.token.here"))
}

func TestAuthorizeUserCanCreateProjects(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newGuardedApp()

	token, err := services.GenerateJWT("id1", "joao", "user")
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, request(t, app, "POST", "/projects", token))
}

func TestAuthorizeUserCannotUpdateProjects(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newGuardedApp()

	// Valid, unexpired token — but role "user" on an admin action.
	token, err := services.GenerateJWT("id1", "joao", "user")
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusForbidden, request(t, app, "PUT", "/projects/abc", token))
	assert.Equal(t, fiber.StatusForbidden, request(t, app, "DELETE", "/users/abc", token))
}

func TestAuthorizeAdminAllowed(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newGuardedApp()

	token, err := services.GenerateJWT("id2", "maria", "admin")
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, request(t, app, "PUT", "/projects/abc", token))
}

func TestAuthorizeUnknownActionDenied(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	app := fiber.New()
	app.Get("/x", AuthRequired, Authorize("projects", "publish"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	token, err := services.GenerateJWT("id2", "maria", "admin")
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusForbidden, request(t, app, "GET", "/x", token))
}
