package service

import (
	"testing"

	"dnd-webapp-demo/backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a throwaway in-memory database with the full schema.
// TranslateError matches the production gorm config so duplicate-key
// handling behaves the same under test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.SheetTemplate{},
		&models.Character{},
		&models.Item{},
		&models.Spell{},
		&models.Ability{},
		&models.State{},
		&models.Summon{},
		&models.Equipment{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, tgID int64) *models.User {
	t.Helper()

	user := models.User{TgID: tgID}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
