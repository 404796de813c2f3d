package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gentleman654/VoxLens/internal/config"
	"github.com/gentleman654/VoxLens/internal/database"
	"github.com/gentleman654/VoxLens/internal/middleware"
	"github.com/gentleman654/VoxLens/internal/models"
	"github.com/gentleman654/VoxLens/pkg/auth"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:              "handler-test-secret",
		JWTAccessTokenExpireMin:   30,
		JWTRefreshTokenExpireDays: 7,
		FreeTierCredits:           50,
		ProTierCredits:            500,
		InternalAPIKey:            "worker-key",
	}
}

// newTestApp wires the full route tree against an in-memory database,
// mirroring the route groups the server registers at startup.
func newTestApp(t *testing.T) (*fiber.App, *database.DB, *config.Config) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	db := &database.DB{DB: gdb}
	require.NoError(t, database.Migrate(db))

	cfg := testConfig()

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})

	v1 := app.Group("/api/v1")
	SetupAuthRoutes(v1.Group("/auth"), db, cfg)
	SetupUserRoutes(v1.Group("/users", middleware.AuthRequired(cfg)), db)
	SetupSearchRoutes(v1.Group("/searches", middleware.AuthRequired(cfg)), db)
	SetupReportRoutes(v1.Group("/reports", middleware.AuthRequired(cfg)), db)
	SetupInternalRoutes(v1.Group("/internal"), db, cfg)

	return app, db, cfg
}

// createUserWithToken seeds a user row and mints an access token for it.
func createUserWithToken(t *testing.T, db *database.DB, cfg *config.Config, email string, credits int) (*models.User, string) {
	t.Helper()

	user := models.User{
		Email:            email,
		Tier:             models.TierFree,
		CreditsRemaining: credits,
		IsActive:         true,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := auth.GenerateAccessToken(user.ID, cfg.JWTSecretKey, cfg.JWTAccessTokenExpireMin)
	require.NoError(t, err)

	return &user, token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)

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

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
