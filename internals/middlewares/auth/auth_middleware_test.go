package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authMiddleware "chaptered_backend/internals/middlewares/auth"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret, typ string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":      "9f4e7a52-0000-4000-8000-000000000001",
		"username": "alice",
		"typ":      typ,
		"exp":      exp.Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func protectedApp(secret string) *fiber.App {
	app := fiber.New()
	app.Get("/protected", authMiddleware.AuthMiddleware(secret), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("username").(string))
	})
	return app
}

func request(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddlewareAcceptsValidAccessToken(t *testing.T) {
	app := protectedApp(testSecret)
	token := signedToken(t, testSecret, "access", time.Now().Add(time.Hour))

	resp := request(t, app, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	app := protectedApp(testSecret)

	resp := request(t, app, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	app := protectedApp(testSecret)

	resp := request(t, app, "/protected", "Token abc")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	app := protectedApp(testSecret)
	token := signedToken(t, testSecret, "access", time.Now().Add(-time.Hour))

	resp := request(t, app, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareExpiryLeeway(t *testing.T) {
	app := protectedApp(testSecret)

	// just past exp but inside the 30s leeway
	token := signedToken(t, testSecret, "access", time.Now().Add(-10*time.Second))
	resp := request(t, app, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// past the leeway
	token = signedToken(t, testSecret, "access", time.Now().Add(-2*time.Minute))
	resp = request(t, app, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsMissingExp(t *testing.T) {
	app := protectedApp(testSecret)

	claims := jwt.MapClaims{"sub": "9f4e7a52-0000-4000-8000-000000000001", "typ": "access"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	resp := request(t, app, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsRefreshToken(t *testing.T) {
	app := protectedApp(testSecret)
	token := signedToken(t, testSecret, "refresh", time.Now().Add(time.Hour))

	resp := request(t, app, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsWrongSecret(t *testing.T) {
	app := protectedApp(testSecret)
	token := signedToken(t, "other-secret", "access", time.Now().Add(time.Hour))

	resp := request(t, app, "/protected", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	app := fiber.New()
	app.Get("/open", authMiddleware.OptionalAuthMiddleware(testSecret), func(c *fiber.Ctx) error {
		if c.Locals("username") != nil {
			return c.SendString("known")
		}
		return c.SendString("anonymous")
	})

	resp := request(t, app, "/open", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = request(t, app, "/open", "Bearer garbage")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	token := signedToken(t, testSecret, "access", time.Now().Add(time.Hour))
	resp = request(t, app, "/open", "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
