// Package testsupport wires an in-memory database and a fully routed app for
// handler tests.
package testsupport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"chaptered_backend/internals/configs"
	databases "chaptered_backend/internals/databases"
	userModel "chaptered_backend/internals/features/users/model"
	userService "chaptered_backend/internals/features/users/service"
	routes "chaptered_backend/internals/route"
)

// OpenTestDB returns a migrated in-memory sqlite database with foreign keys
// enabled. One connection only, so every query sees the same memory store.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, databases.Migrate(db))
	return db
}

// NewTestApp builds the app with the full route table against the given DB.
func NewTestApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()

	configs.JWTSecret = "test-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"

	app := fiber.New()
	routes.SetupRoutes(app, db)
	return app
}

// CreateUser inserts a user (password "password123") with an empty profile
// and returns it with a signed access token. Bypasses the register endpoint
// so tests do not fight the registration rate limiter.
func CreateUser(t *testing.T, db *gorm.DB, username string) (*userModel.UserModel, string) {
	t.Helper()

	configs.JWTSecret = "test-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &userModel.UserModel{
		UserName: username,
		Email:    username + "@example.com",
		Password: string(hashed),
	}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&userModel.UserProfileModel{UserID: user.ID}).Error)

	access, _, err := userService.IssueTokenPair(user)
	require.NoError(t, err)
	return user, access
}

// DoJSON fires a JSON request at the app. token may be empty for anonymous
// calls, body may be empty for bodiless methods.
func DoJSON(t *testing.T, app *fiber.App, method, path, token, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ReadJSON decodes a response body into a generic map.
func ReadJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out), "body: %s", string(body))
	return out
}
