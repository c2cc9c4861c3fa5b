package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/andrewpaige1/thoughtcatcher-api/config"
	"github.com/andrewpaige1/thoughtcatcher-api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a migrated SQLite store that lives for the duration of t.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type fakeTokens struct{}

func (fakeTokens) CreateToken(userID string) (string, error) { return "token-" + userID, nil }

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:    username,
		Email:       username + "@example.com",
		Password:    "x",
		Preferences: models.DefaultPreferences(),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createMindMap(t *testing.T, db *gorm.DB, userID, title string) *models.MindMap {
	t.Helper()
	m, err := NewMindMaps(db, NewGuard(db)).Create(context.Background(), userID, MindMapInput{Title: title})
	require.NoError(t, err)
	return m
}

func num(s string) []byte { return []byte(s) }

func ptr[T any](v T) *T { return &v }
