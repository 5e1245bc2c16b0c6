//go:build integration

package config

import (
	"SteamProfile/models/postgres"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Runs against a throwaway PostgreSQL: go test -tags integration ./config/...
func TestPostgresMigrationWithContainer(t *testing.T) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "steam",
				"POSTGRES_PASSWORD": "steam",
				"POSTGRES_DB":       "steamprofile",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate PostgreSQL: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg := DatabaseConfig{
		Type:            "postgres",
		Host:            host,
		Port:            port.Port(),
		User:            "steam",
		Password:        "steam",
		Name:            "steamprofile",
		MaxIdleConns:    2,
		MaxOpenConns:    5,
		ConnMaxLifetime: time.Hour,
	}

	// the port accepts connections slightly before the server is ready
	var connectErr error
	for i := 0; i < 10; i++ {
		db, err := ConnectGORM(cfg)
		if err == nil {
			require.NoError(t, MigrateDatabase(db))

			a := postgres.User{Username: "alice", Email: "alice@test", PasswordHash: "x"}
			b := postgres.User{Username: "bob", Email: "bob@test", PasswordHash: "x"}
			require.NoError(t, db.Create(&a).Error)
			require.NoError(t, db.Create(&b).Error)

			require.NoError(t, db.Create(&postgres.Friendship{UserID: b.ID, FriendID: a.ID}).Error)
			err = db.Create(&postgres.Friendship{UserID: a.ID, FriendID: b.ID}).Error
			assert.Error(t, err, "mirrored friendship row must violate the pair index")
			return
		}
		connectErr = err
		time.Sleep(time.Second)
	}
	t.Fatalf("could not connect to PostgreSQL: %v", connectErr)
}
