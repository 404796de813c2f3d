package services

import (
	"testing"

	"github.com/gentleman654/VoxLens/internal/database"
	"github.com/gentleman654/VoxLens/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema. The
// pool is pinned to one connection so every query sees the same database.
func newTestDB(t *testing.T) *database.DB {
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

	return db
}

func createTestUser(t *testing.T, db *database.DB, email string, credits int) *models.User {
	t.Helper()

	user := models.User{
		Email:            email,
		Tier:             models.TierFree,
		CreditsRemaining: credits,
		IsActive:         true,
	}
	require.NoError(t, db.Create(&user).Error)

	return &user
}
