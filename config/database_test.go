package config

import (
	"SteamProfile/models/postgres"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectAndMigrateSQLite(t *testing.T) {
	db, err := ConnectGORM(DatabaseConfig{
		Type:            "sqlite",
		DSN:             "file:TestConnectAndMigrateSQLite?mode=memory&cache=shared",
		ConnMaxLifetime: time.Hour,
	})
	require.NoError(t, err)

	require.NoError(t, MigrateDatabase(db))
	for _, model := range []any{&postgres.User{}, &postgres.Friendship{}, &postgres.FriendRequest{}, &postgres.Wallet{}, &postgres.FeatureUser{}, &postgres.ReviewVote{}} {
		assert.True(t, db.Migrator().HasTable(model))
	}

	var features int64
	require.NoError(t, db.Model(&postgres.Feature{}).Count(&features).Error)
	assert.Equal(t, int64(len(postgres.DefaultFeatures())), features)

	// seeding twice must not duplicate the catalog
	require.NoError(t, SeedCatalog(db))
	var achievements int64
	require.NoError(t, db.Model(&postgres.Achievement{}).Count(&achievements).Error)
	assert.Equal(t, int64(len(postgres.DefaultAchievements())), achievements)
}

func TestConnectUnsupportedDialect(t *testing.T) {
	_, err := ConnectGORM(DatabaseConfig{Type: "oracle"})
	assert.Error(t, err)
}
