package testhelpers

import (
	"SteamProfile/config"
	"SteamProfile/models/postgres"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"
)

var dsnReplacer = strings.NewReplacer("/", "_", " ", "_", "#", "_")

// SetupTestDB creates an isolated, migrated in-memory SQLite database for tests.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", dsnReplacer.Replace(t.Name()))
	db, err := config.ConnectGORM(config.DatabaseConfig{
		Type:            "sqlite",
		DSN:             dsn,
		ConnMaxLifetime: time.Hour,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to open test database: %v", err))
	}
	if err := config.MigrateDatabase(db); err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a user with a throwaway password hash
func CreateUser(t *testing.T, db *gorm.DB, username string) *postgres.User {
	t.Helper()

	user := &postgres.User{
		Username:     username,
		Email:        username + "@steamprofile.test",
		PasswordHash: "not-a-real-hash",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}
