package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/shift-roster-api/internal/database"
	"github.com/yukikurage/shift-roster-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Discard,
		NowFunc:        database.Now,
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		Name:         email,
		Email:        email,
		PasswordHash: "hashed",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
